package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings.
type KeyMap struct {
	Quit       key.Binding
	Search     key.Binding
	Import     key.Binding
	Previous   key.Binding
	Next       key.Binding
	Resume     key.Binding
	Pause      key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	SeekJump   key.Binding
}

// Steps applied by the volume and seek keys.
const (
	VolumeStep = 5
	SeekStep   = 5.0 // percent
)

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "query")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Previous:   key.NewBinding(key.WithKeys("b", "pgup"), key.WithHelp("b", "prev")),
		Next:       key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next")),
		Resume:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Pause:      key.NewBinding(key.WithKeys(" ", "z"), key.WithHelp("space", "pause")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "volume")),
		VolumeDown: key.NewBinding(key.WithKeys("-", "_")),
		SeekBack:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "seek")),
		SeekFwd:    key.NewBinding(key.WithKeys("right")),
		SeekJump: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "jump"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Search, k.Resume, k.Pause, k.Previous, k.Next,
		k.VolumeUp, k.SeekBack, k.SeekJump, k.Import, k.Quit,
	}
}
