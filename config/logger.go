package config

import (
	"go.uber.org/zap"
)

// NewLogger returns a development logger for APP_ENV=dev and a JSON
// production logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
