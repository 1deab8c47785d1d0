package resolver

import (
	"context"
	"fmt"

	"github.com/kkdai/youtube/v2"
)

// Native extracts streams in-process without external binaries.
type Native struct {
	client youtube.Client
}

// NewNative creates an in-process extractor.
func NewNative() *Native {
	return &Native{}
}

// Name implements Extractor.
func (n *Native) Name() string { return "native" }

// Extract implements Extractor.
func (n *Native) Extract(ctx context.Context, url string) (Track, error) {
	video, err := n.client.GetVideoContext(ctx, url)
	if err != nil {
		return Track{}, fmt.Errorf("fetch video: %w", err)
	}

	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		return Track{}, ErrNoStream
	}
	format := &formats[0]

	streamURL, err := n.client.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return Track{}, fmt.Errorf("stream url: %w", err)
	}

	return Track{
		Title:     video.Title,
		Channel:   video.Author,
		Duration:  video.Duration,
		StreamURL: streamURL,
		PageURL:   fmt.Sprintf(WatchURLTemplate, video.ID),
	}, nil
}
