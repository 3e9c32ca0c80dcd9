package config

import "go.uber.org/zap"

// NewLogger builds the service logger.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	if c.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
