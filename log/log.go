// Package log holds the process-wide structured logger.
package log

import (
	"os"

	"go.uber.org/zap"
)

// Logger is shared by every adapter in the process.
var Logger *zap.Logger

func init() {
	var err error
	if os.Getenv("DEBUG") == "1" {
		Logger, err = zap.NewDevelopment()
	} else {
		Logger, err = zap.NewProduction()
	}
	if err != nil {
		Logger = zap.NewNop()
	}
}
