// Package resolver turns user queries (video URLs or bare IDs) into
// directly playable audio stream URLs plus track metadata.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WatchURLTemplate is the canonical watch URL for a bare video ID.
const WatchURLTemplate = "https://www.youtube.com/watch?v=%s"

// Default metadata for fields the extractor leaves empty.
const (
	UnknownTitle   = "Unknown Track"
	UnknownChannel = "Unknown Channel"
)

var (
	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("please provide a YouTube URL or video ID")
	// ErrNoStream is returned when the extractor finds no playable audio.
	ErrNoStream = errors.New("could not resolve audio stream")
)

// knownHosts are substrings that mark a query as a full URL.
var knownHosts = []string{"youtube.com", "youtu.be"}

// Track is a resolved, directly playable track.
type Track struct {
	Title     string
	Channel   string
	Duration  time.Duration
	StreamURL string
	PageURL   string
}

// Resolver resolves a user query into a playable track.
type Resolver interface {
	Resolve(ctx context.Context, query string) (Track, error)
}

// Extractor fetches metadata and a stream URL for a canonical video URL.
type Extractor interface {
	Extract(ctx context.Context, url string) (Track, error)
	Name() string
}

// Normalize trims the query and expands bare IDs into a watch URL.
func Normalize(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	for _, host := range knownHosts {
		if strings.Contains(query, host) {
			return query, nil
		}
	}
	return fmt.Sprintf(WatchURLTemplate, query), nil
}

// Service validates and normalizes queries before handing them to an Extractor.
type Service struct {
	extractor Extractor
	timeout   time.Duration
	logger    *zap.Logger
}

// Verify Service implements Resolver at compile time.
var _ Resolver = (*Service)(nil)

// NewService creates a resolver backed by the given extractor.
// A zero timeout disables the per-call deadline.
func NewService(extractor Extractor, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		extractor: extractor,
		timeout:   timeout,
		logger:    logger,
	}
}

// Resolve implements Resolver.
func (s *Service) Resolve(ctx context.Context, query string) (Track, error) {
	url, err := Normalize(query)
	if err != nil {
		return Track{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	track, err := s.extractor.Extract(ctx, url)
	if err != nil {
		s.logger.Warn("resolve failed",
			zap.String("url", url),
			zap.String("backend", s.extractor.Name()),
			zap.Error(err))
		return Track{}, err
	}
	if track.StreamURL == "" {
		return Track{}, ErrNoStream
	}

	if track.Title == "" {
		track.Title = UnknownTitle
	}
	if track.Channel == "" {
		track.Channel = UnknownChannel
	}
	if track.PageURL == "" {
		track.PageURL = url
	}

	s.logger.Info("resolved",
		zap.String("url", url),
		zap.String("backend", s.extractor.Name()),
		zap.String("title", track.Title),
		zap.Duration("duration", track.Duration),
		zap.Duration("took", time.Since(start)))

	return track, nil
}
