package logger

import (
	"go.uber.org/zap"
)

// Init builds the global zap logger. mode "production" selects the JSON
// encoder, anything else the development console encoder.
func Init(mode string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	logger, err := zapConfig.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
