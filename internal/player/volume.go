package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the volume on a 0-100 scale, clamped.
func (p *Player) SetVolume(v int) {
	v = max(0, min(100, v))

	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = v

	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(v)
		p.volume.Silent = v == 0
		speaker.Unlock()
	}
}

// Volume returns the current volume on a 0-100 scale.
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

// levelToVolume converts a 0-100 level to beep's base-2 Volume value.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 100 -> 0, 50 -> -1, 25 -> -2, 0 -> -10 (and Silent is set).
func levelToVolume(v int) float64 {
	if v <= 0 {
		return -10
	}
	if v >= 100 {
		return 0
	}
	return math.Log2(float64(v) / 100)
}
