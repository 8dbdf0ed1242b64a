package logger

import (
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05} %{level:.5s} %{module:-10s} %{message}`,
)

// New returns the logger for a module. Loggers created before Init pick up
// the backend once Init runs.
func New(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// Init parses the level name (DEBUG, INFO, WARNING, ERROR...) and installs a
// stdout backend with that level for every module.
func Init(level string) error {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)

	leveled := logging.AddModuleLevel(formatted)
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return err
	}
	leveled.SetLevel(lvl, "")

	logging.SetBackend(leveled)
	return nil
}
