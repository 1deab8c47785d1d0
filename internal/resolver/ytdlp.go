package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// YTDLP extracts streams by running the yt-dlp executable.
type YTDLP struct {
	format string
	binary string
}

// NewYTDLP creates a yt-dlp backed extractor. An empty binary uses yt-dlp from PATH.
func NewYTDLP(format, binary string) *YTDLP {
	return &YTDLP{format: format, binary: binary}
}

// Name implements Extractor.
func (y *YTDLP) Name() string { return "ytdlp" }

// Extract implements Extractor.
func (y *YTDLP) Extract(ctx context.Context, url string) (Track, error) {
	dl := ytdlp.New().
		Format(y.format).
		NoPlaylist().
		NoWarnings().
		SkipDownload().
		PrintJSON()
	if y.binary != "" {
		dl = dl.SetExecutable(y.binary)
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		return Track{}, fmt.Errorf("yt-dlp: %w", err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return Track{}, fmt.Errorf("yt-dlp output: %w", err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return Track{}, ErrNoStream
	}
	info := infos[0]

	if info.URL == nil || *info.URL == "" {
		return Track{}, ErrNoStream
	}

	track := Track{
		Title:     deref(info.Title),
		Channel:   deref(info.Uploader),
		StreamURL: *info.URL,
		PageURL:   deref(info.WebpageURL),
	}
	if info.Duration != nil && *info.Duration > 0 {
		track.Duration = time.Duration(*info.Duration * float64(time.Second))
	}
	return track, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
