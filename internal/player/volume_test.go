package player

import (
	"math"
	"testing"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{-5, -10},
		{0, -10},
		{25, -2},
		{50, -1},
		{100, 0},
		{150, 0},
	}

	for _, tt := range tests {
		got := levelToVolume(tt.level)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToVolume(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p, _ := newTestPlayer(t)

	p.SetVolume(130)
	if got := p.Volume(); got != 100 {
		t.Errorf("Volume() = %d, want 100", got)
	}

	p.SetVolume(-3)
	if got := p.Volume(); got != 0 {
		t.Errorf("Volume() = %d, want 0", got)
	}
}

func TestPlayer_VolumeAppliedToNewStream(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.SetVolume(50)

	if err := p.Load(Media{URL: "u"}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.volume == nil {
		t.Fatal("volume effect not created")
	}
	if math.Abs(p.volume.Volume-(-1)) > 1e-9 {
		t.Errorf("effect volume = %v, want -1", p.volume.Volume)
	}
	if p.volume.Silent {
		t.Error("effect should not be silent at 50")
	}
}
