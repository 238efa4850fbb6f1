package slack

import (
	"fmt"

	"github.com/m-mizutani/actnotify/pkg/utils/logging"
)

// restyLogger forwards resty's internal messages to the default logger. The
// text goes into an attribute so that the redaction rules apply to it.
type restyLogger struct{}

func (x *restyLogger) Errorf(format string, v ...interface{}) {
	logging.Default().Error("error from resty", "msg", fmt.Sprintf(format, v...))
}

func (x *restyLogger) Warnf(format string, v ...interface{}) {
	logging.Default().Warn("warning from resty", "msg", fmt.Sprintf(format, v...))
}

func (x *restyLogger) Debugf(format string, v ...interface{}) {
	logging.Default().Debug("debug from resty", "msg", fmt.Sprintf(format, v...))
}
