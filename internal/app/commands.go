package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Loop periods.
const (
	RenderInterval = 40 * time.Millisecond
	SyncInterval   = 300 * time.Millisecond
)

func renderTickCmd() tea.Cmd {
	return tea.Tick(RenderInterval, func(t time.Time) tea.Msg {
		return RenderTickMsg(t)
	})
}

func syncTickCmd() tea.Cmd {
	return tea.Tick(SyncInterval, func(t time.Time) tea.Msg {
		return SyncTickMsg(t)
	})
}

// watchFinished waits for the engine to report the end of a stream.
func (m Model) watchFinished() tea.Cmd {
	ch := m.ctrl.Engine().FinishedChan()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return TrackFinishedMsg{}
	}
}

func importCmd(importer Importer, url string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tracks, err := importer.Import(ctx, url)
		return ImportedMsg{URL: url, Tracks: tracks, Err: err}
	}
}
