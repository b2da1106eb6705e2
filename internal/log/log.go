package log

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// WithSpinner runs fn while showing a progress spinner with the given
// message on stderr-friendly terminals.
func WithSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], spinnerInterval)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		return fmt.Errorf("coloring spinner: %w", err)
	}

	s.Start()
	s.FinalMSG = message + " \033[32m[done]\033[0m\n"
	defer s.Stop()

	return fn()
}