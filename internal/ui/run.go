package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jsmin/internal/driver"
)

// RunProgress renders progress on out until events is closed. The caller
// owns the channel and closes it once the run has finished.
func RunProgress(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	p := tea.NewProgram(
		NewProgressModel(title, files, events),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	_, err := p.Run()
	return err
}
