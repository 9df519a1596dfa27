package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var log atomic.Pointer[zerolog.Logger]

func init() {
	Init(os.Stderr, true)
}

const DefaultLevel = "info"

// Init replaces the output, mostly for tests and --quiet style flags. It is
// safe to call while other goroutines log.
func Init(out io.Writer, pretty bool) {
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(out).With().Timestamp().Logger()
	log.Store(&l)
}

// SetLevel sets the global level from a name such as "debug" or "warn".
func SetLevel(name string) error {
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		return fmt.Errorf("invalid log level %q", name)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func DebugEnabled() bool { return zerolog.GlobalLevel() <= zerolog.DebugLevel }

func Debug() *zerolog.Event { return log.Load().Debug() }

func Info() *zerolog.Event { return log.Load().Info() }

func Warn() *zerolog.Event { return log.Load().Warn() }

func Error() *zerolog.Event { return log.Load().Error() }
