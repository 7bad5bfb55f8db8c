package logger

import (
	"github.com/inconshreveable/log15"
)

// New returns a stdout logger tagged with service. An unknown level
// falls back to info.
func New(service string, level string) log15.Logger {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		lvl = log15.LvlInfo
	}

	logger := log15.New("service", service)
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StdoutHandler))

	return logger
}

func Discard() log15.Logger {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())
	return logger
}
