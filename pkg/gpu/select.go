package gpu

import (
	"log/slog"

	"github.com/charmbracelet/huh"
)

// HuhSelect is the default interactive selection provider: a terminal
// single-select over the catalog names. Cancellation (ctrl+c, esc) reports
// no choice rather than an error.
func HuhSelect(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}

	options := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		options = append(options, huh.NewOption(n, n))
	}

	var choice string
	form := huh.NewSelect[string]().
		Title("Select your GPU model").
		Options(options...).
		Value(&choice)

	if err := form.Run(); err != nil {
		slog.Debug("GPU selection aborted", "error", err)
		return "", false
	}
	return choice, true
}
