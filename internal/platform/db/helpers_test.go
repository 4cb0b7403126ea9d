package db

import (
	"testing"

	"github.com/yungbote/payona-backend/internal/platform/logger"
)

func nopLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.Nop()
}
