package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "pixelpop"

// Resolver backends.
const (
	BackendYTDLP  = "ytdlp"
	BackendNative = "native"
)

type Config struct {
	Volume int `koanf:"volume"` // initial volume (0-100) when none is saved

	Resolver ResolverConfig `koanf:"resolver"`
	Engine   EngineConfig   `koanf:"engine"`
	Playback PlaybackConfig `koanf:"playback"`
	History  HistoryConfig  `koanf:"history"`
	Notify   NotifyConfig   `koanf:"notify"`
	Log      LogConfig      `koanf:"log"`

	// Last.fm scrobbling (enabled when fully configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// Initial in-memory queue; the built-in defaults are used when empty
	Queue []QueueEntry `koanf:"queue"`
}

// ResolverConfig selects and tunes the stream resolver.
type ResolverConfig struct {
	Backend string `koanf:"backend"` // "ytdlp" or "native" (default: "ytdlp")
	Format  string `koanf:"format"`  // yt-dlp format selector (default: "bestaudio/best")
	Timeout string `koanf:"timeout"` // per-resolution timeout (default: "60s")
	Binary  string `koanf:"binary"`  // optional path to the yt-dlp executable
}

// EngineConfig configures the audio engine.
type EngineConfig struct {
	FFmpeg     string `koanf:"ffmpeg"`      // ffmpeg executable (default: "ffmpeg")
	SampleRate int    `koanf:"sample_rate"` // output sample rate (default: 44100)
}

// PlaybackConfig holds playback behavior toggles.
type PlaybackConfig struct {
	AutoAdvance bool `koanf:"auto_advance"` // play the next queue entry when a track ends
}

// HistoryConfig controls the play history store.
type HistoryConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `koanf:"path"`  // default: $XDG_STATE_HOME/pixelpop/pixelpop.log
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// QueueEntry is a queue item as written in the config file.
type QueueEntry struct {
	Title  string `koanf:"title"`
	Source string `koanf:"source"`
}

var defaultQueue = []QueueEntry{
	{Title: "Hype Boy (Official)", Source: "https://www.youtube.com/watch?v=11cta61wi0g"},
	{Title: "Ditto (Official)", Source: "https://www.youtube.com/watch?v=Km71Rr9K-Bw"},
	{Title: "Super Shy (Official)", Source: "https://www.youtube.com/watch?v=ArmDp-zijuc"},
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads configuration from the given files in order (last wins).
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Volume: -1, // unset
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Resolver.Backend = strings.ToLower(strings.TrimSpace(cfg.Resolver.Backend))
	if cfg.Resolver.Binary != "" {
		cfg.Resolver.Binary = expandPath(cfg.Resolver.Binary)
	}
	if cfg.Engine.FFmpeg != "" {
		cfg.Engine.FFmpeg = expandPath(cfg.Engine.FFmpeg)
	}
	if cfg.Log.Path != "" {
		cfg.Log.Path = expandPath(cfg.Log.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/pixelpop/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// InitialVolume returns the configured start volume, clamped to 0-100 (default: 75).
func (c *Config) InitialVolume() int {
	if c.Volume < 0 {
		return 75
	}
	return min(c.Volume, 100)
}

// GetResolverConfig returns the resolver configuration with defaults applied.
func (c *Config) GetResolverConfig() ResolverConfig {
	cfg := c.Resolver
	if cfg.Backend != BackendNative {
		cfg.Backend = BackendYTDLP
	}
	if cfg.Format == "" {
		cfg.Format = "bestaudio/best"
	}
	if _, err := time.ParseDuration(cfg.Timeout); err != nil {
		cfg.Timeout = "60s"
	}
	return cfg
}

// ResolveTimeout returns the per-resolution timeout.
func (c *Config) ResolveTimeout() time.Duration {
	d, _ := time.ParseDuration(c.GetResolverConfig().Timeout)
	if d <= 0 {
		return 60 * time.Second
	}
	return d
}

// GetEngineConfig returns the engine configuration with defaults applied.
func (c *Config) GetEngineConfig() EngineConfig {
	cfg := c.Engine
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	return cfg
}

// HistoryEnabled reports whether play history is recorded (default: true).
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// NotifyEnabled reports whether desktop notifications are sent (default: true).
func (c *Config) NotifyEnabled() bool {
	return c.Notify.Enabled == nil || *c.Notify.Enabled
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" && c.Lastfm.SessionKey != ""
}

// LogPath returns the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// QueueEntries returns the initial queue, falling back to the built-in tracks.
// Entries without a source are skipped; a missing title falls back to the source.
func (c *Config) QueueEntries() []QueueEntry {
	if len(c.Queue) == 0 {
		out := make([]QueueEntry, len(defaultQueue))
		copy(out, defaultQueue)
		return out
	}
	out := make([]QueueEntry, 0, len(c.Queue))
	for _, e := range c.Queue {
		src := strings.TrimSpace(e.Source)
		if src == "" {
			continue
		}
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = src
		}
		out = append(out, QueueEntry{Title: title, Source: src})
	}
	return out
}
