package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the playback key bindings.
type KeyMap struct {
	PlayPause key.Binding
	Reverse   key.Binding
	Step      key.Binding
	StepBack  key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Rewind    key.Binding
	Snapshot  key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play in reverse"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "step forward"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "step back"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "rewind"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save snapshot"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy record"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the hints shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Step, k.StepBack, k.Reverse, k.Help, k.Quit}
}
