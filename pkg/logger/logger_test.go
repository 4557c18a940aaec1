package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.warn)
	assert.NotNil(t, logger.error)
}

func TestInfo(t *testing.T) {
	logger := New()

	// Test that Info doesn't panic
	logger.Info("Test message: %s", "info")
}

func TestWarn(t *testing.T) {
	logger := New()

	logger.Warn("Test warning: %s", "warning")
}

func TestError(t *testing.T) {
	logger := New()

	logger.Error("Test error: %s", "error")
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()

	logger.Info("Admin %s logged in with ID %d", "john", 123)
	logger.Error("Failed to process request %d: %s", 404, "not found")
	logger.Warn("Warning: %s count is %d", "items", 5)
}
