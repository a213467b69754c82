package logging

import (
	"io"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. Logs always go to stderr,
// stdout carries MCP traffic and command output.
func Setup(level string) error {
	return SetupWithOutput(level, colorable.NewColorableStderr())
}

// SetupWithOutput is Setup with an explicit destination
func SetupWithOutput(level string, out io.Writer) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	logrus.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	logrus.SetLevel(lvl)
	return nil
}
