package runecoral

import (
	"log/slog"

	"github.com/hotg-ai/runecoral-go/pkg/runecoral/logging"
)

// Config selects the native library and how the wrapper reports what it
// does.
type Config struct {
	// LibraryPath is a librunecoral shared object to load at runtime. When
	// empty the statically linked library is used, which requires building
	// with -tags runecoral.
	LibraryPath string

	// Logger receives debug and warning records. Nil disables logging.
	Logger *slog.Logger
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.Nop()
	}
	return logging.New(c.Logger)
}
