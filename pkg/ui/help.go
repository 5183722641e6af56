package ui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# Playback Controls

| Key | Action |
|-----|--------|
| space | play / pause |
| r | play in reverse |
| n / → | step one item forward |
| b / ← | step one item back |
| + / - | speed up / slow down |
| 0 | rewind to the start |
| s | save a PNG snapshot of the current structure |
| y | copy the structure record (JSON) to the clipboard |
| ? | toggle this help |
| q | quit |

Playback replays the items recorded while the operation ran. Reverse
playback re-displays the same frames in reverse order; it does not undo
the operation.
`

// renderHelp renders the help overlay, falling back to plain markdown when
// the terminal renderer cannot be built.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
