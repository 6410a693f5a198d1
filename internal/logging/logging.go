package logging

import (
	"log/slog"
	"os"
)

// New returns a logger writing text records to STDOUT, tagged with the
// originating component.
func New(component string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil)).With("component", component)
}
