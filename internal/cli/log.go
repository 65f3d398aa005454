package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// timeFormat stamps lines to the hundredth of a second.
const timeFormat = "15:04:05.00"

// newLogger returns a timestamped logger on w that drops messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(timeFormat)
	l.SetLevel(level)
	return l
}
