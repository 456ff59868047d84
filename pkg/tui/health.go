package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunHealthTUI probes the backend once and prints the indicator.
func RunHealthTUI(ctx context.Context, s *Session) error {
	_ = spinner.New().
		Title(fmt.Sprintf("Checking %s...", s.Client.BaseURL())).
		Action(func() {
			s.Monitor.Probe(ctx)
		}).
		Run()

	fmt.Printf("\n%s  %s\n\n", s.Screen.StatusLine(), s.Client.BaseURL())
	return nil
}
