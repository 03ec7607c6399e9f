package logger

import "go.uber.org/zap"

// Log is the process-wide structured logger
var Log *zap.Logger

// Init builds the logger for the given environment and stores it in Log.
// Production config emits JSON; anything else uses the development console
// encoder.
func Init(env string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	Log = l
	return l, nil
}
