package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var (
	base = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "nframe",
		Level:           log.InfoLevel,
	})

	// InfoLog, WarnLog and ErrLog share one backend, so SetLevel and SetOutput apply to all of them
	InfoLog = base
	WarnLog = base
	ErrLog  = base
)

// SetLevel accepts one of debug, info, warn, error or fatal
func SetLevel(level string) error {

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	base.SetLevel(lvl)
	return nil
}

func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func SetReportCaller(enabled bool) {
	base.SetReportCaller(enabled)
}
