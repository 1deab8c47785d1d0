package player

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Idle, "Idle"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{Stopped, "Stopped"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state     State
		active    bool
		canPause  bool
		canResume bool
	}{
		{Idle, false, false, true},
		{Playing, true, true, false},
		{Paused, true, false, true},
		{Stopped, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
			if got := tt.state.CanResume(); got != tt.canResume {
				t.Errorf("CanResume() = %v, want %v", got, tt.canResume)
			}
		})
	}
}

func TestMock_StateTransitions(t *testing.T) {
	media := Media{URL: "https://stream.example/a", Title: "a"}

	t.Run("Idle to Playing via Load", func(t *testing.T) {
		m := NewMock()
		if m.State() != Idle {
			t.Fatalf("initial state = %v, want Idle", m.State())
		}
		_ = m.Load(media)
		if m.State() != Playing {
			t.Errorf("state after Load = %v, want Playing", m.State())
		}
	})

	t.Run("Play on Idle is no-op", func(t *testing.T) {
		m := NewMock()
		m.Play()
		if m.State() != Idle {
			t.Errorf("state = %v, want Idle", m.State())
		}
	})

	t.Run("Paused to Playing via Play", func(t *testing.T) {
		m := NewMock()
		_ = m.Load(media)
		m.Pause()
		m.Play()
		if m.State() != Playing {
			t.Errorf("state = %v, want Playing", m.State())
		}
	})

	t.Run("finished stream restarts via Play", func(t *testing.T) {
		m := NewMock()
		_ = m.Load(media)
		m.SimulateFinished()
		if m.State() != Stopped {
			t.Fatalf("state after finish = %v, want Stopped", m.State())
		}
		m.Play()
		if m.State() != Playing {
			t.Errorf("state = %v, want Playing", m.State())
		}
	})

	t.Run("Pause when Stopped is no-op", func(t *testing.T) {
		m := NewMock()
		_ = m.Load(media)
		m.Stop()
		m.Pause()
		if m.State() != Stopped {
			t.Errorf("state = %v, want Stopped", m.State())
		}
	})
}
