package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ytdlpv2 "github.com/ytget/ytdlp/v2"

	"github.com/llehouerou/pixelpop/internal/playlist"
)

// URL parameters and separators
const (
	playlistParam  = "list="
	paramSeparator = "&"
)

// DefaultImportTimeout bounds a playlist import.
const DefaultImportTimeout = 60 * time.Second

// ErrNotPlaylist is returned when a URL carries no playlist ID.
var ErrNotPlaylist = errors.New("not a playlist URL")

// PlaylistFetcher lists the entries of a playlist.
type PlaylistFetcher interface {
	Fetch(ctx context.Context, playlistID string) ([]playlist.Track, error)
}

// PlaylistImporter expands playlist URLs into queue tracks.
type PlaylistImporter struct {
	fetcher PlaylistFetcher
	timeout time.Duration
}

// NewPlaylistImporter creates an importer using the in-process playlist client.
func NewPlaylistImporter() *PlaylistImporter {
	return &PlaylistImporter{
		fetcher: ytdlpFetcher{},
		timeout: DefaultImportTimeout,
	}
}

// Import returns the tracks of the playlist referenced by url.
func (p *PlaylistImporter) Import(ctx context.Context, url string) ([]playlist.Track, error) {
	id := ExtractPlaylistID(url)
	if id == "" {
		return nil, ErrNotPlaylist
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tracks, err := p.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	return tracks, nil
}

// ExtractPlaylistID returns the list= parameter of a playlist URL, or "".
func ExtractPlaylistID(url string) string {
	_, rest, ok := strings.Cut(url, playlistParam)
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, paramSeparator)
	return strings.TrimSpace(id)
}

// IsPlaylistURL reports whether url references a playlist.
func IsPlaylistURL(url string) bool {
	return ExtractPlaylistID(url) != ""
}

type ytdlpFetcher struct{}

func (ytdlpFetcher) Fetch(ctx context.Context, playlistID string) ([]playlist.Track, error) {
	d := ytdlpv2.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	tracks := make([]playlist.Track, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		title := it.Title
		if title == "" {
			title = it.VideoID
		}
		tracks = append(tracks, playlist.Track{
			Title:  title,
			Source: fmt.Sprintf(WatchURLTemplate, it.VideoID),
		})
	}
	return tracks, nil
}
