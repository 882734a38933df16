// internal/utils/logger_test.go
package utils

import (
	"os"
	"testing"
)

func TestNewLogger_HonorsLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger, ok := NewLogger().(*SimpleLogger)
	if !ok {
		t.Fatal("expected SimpleLogger")
	}
	if logger.level != DebugLevel {
		t.Errorf("expected debug level from env, got %v", logger.level)
	}

	os.Unsetenv("LOG_LEVEL")
	logger = NewLogger().(*SimpleLogger)
	if logger.level != InfoLevel {
		t.Errorf("expected default info level, got %v", logger.level)
	}
}

func TestWithField_DoesNotMutateParent(t *testing.T) {
	parent := NewLoggerWithLevel(InfoLevel).(*SimpleLogger)
	child := parent.WithField("url", "https://www.avvo.com").(*SimpleLogger)

	if len(parent.fields) != 0 {
		t.Errorf("expected parent fields untouched, got %v", parent.fields)
	}
	if child.fields["url"] != "https://www.avvo.com" {
		t.Errorf("expected child to carry the field, got %v", child.fields)
	}
}

func TestWithFields_Merges(t *testing.T) {
	base := NewLoggerWithLevel(InfoLevel).WithField("a", 1)
	merged := base.WithFields(map[string]interface{}{"b": 2}).(*SimpleLogger)

	if merged.fields["a"] != 1 || merged.fields["b"] != 2 {
		t.Errorf("expected merged fields, got %v", merged.fields)
	}
}

func TestNopLogger_ImplementsInterface(t *testing.T) {
	var logger Logger = NopLogger{}
	logger.Info("ignored")
	logger.WithField("k", "v").Debugf("also ignored: %d", 1)
}
