// Package logger builds the service's zap loggers.
package logger

import "go.uber.org/zap"

// NewNamed returns a named zap logger configured for the given environment.
// Development gets console output, everything else structured JSON.
func NewNamed(env, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
