package log

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/lmittmann/tint"
)

const timeFormat = "060102 15:04:05.000"

var slogger atomic.Pointer[slog.Logger]

func init() {
	// Let the handler accept everything, the package gate decides.
	slogger.Store(slog.New(tint.NewHandler(
		os.Stderr,
		&tint.Options{
			Level:      TraceLevel.toSLogLevel(),
			TimeFormat: timeFormat,
			NoColor:    !isTerminal(os.Stderr),
		},
	)))
}

func logger() *slog.Logger {
	return slogger.Load()
}

// SetOutput replaces the log backend, eg. to write to a file or buffer
// instead of stderr. Colors are only enabled when w is a terminal.
func SetOutput(w io.Writer) {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isTerminal(f)
	}
	slogger.Store(slog.New(tint.NewHandler(
		w,
		&tint.Options{
			Level:      TraceLevel.toSLogLevel(),
			TimeFormat: timeFormat,
			NoColor:    noColor,
		},
	)))
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
