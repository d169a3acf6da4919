package ask

import (
	"fmt"

	"github.com/rs/zerolog"
	sdklog "go.temporal.io/sdk/log"
)

// sdkLogger adapts zerolog to the engine SDK's key/value logger.
type sdkLogger struct{ log zerolog.Logger }

// NewSDKLogger bridges zerolog into the SDK logger interface for
// callers that construct their own engine client.
func NewSDKLogger(log zerolog.Logger) sdklog.Logger {
	return sdkLogger{log: log}
}

func (l sdkLogger) Debug(msg string, keyvals ...interface{}) { emit(l.log.Debug(), msg, keyvals) }
func (l sdkLogger) Info(msg string, keyvals ...interface{})  { emit(l.log.Info(), msg, keyvals) }
func (l sdkLogger) Warn(msg string, keyvals ...interface{})  { emit(l.log.Warn(), msg, keyvals) }
func (l sdkLogger) Error(msg string, keyvals ...interface{}) { emit(l.log.Error(), msg, keyvals) }

func emit(ev *zerolog.Event, msg string, keyvals []interface{}) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		k, ok := keyvals[i].(string)
		if !ok {
			k = fmt.Sprint(keyvals[i])
		}
		ev = ev.Interface(k, keyvals[i+1])
	}
	ev.Msg(msg)
}
