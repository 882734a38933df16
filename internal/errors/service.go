// internal/errors/service.go

// Package errors classifies run failures for the CLI: transient failures
// get retried with backoff, terminal ones map to distinct exit codes.
package errors

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// Service wraps operations with retry and turns their errors into exit
// codes and CLI messages.
type Service struct {
	retryConfig RetryConfig
	verbose     bool
}

// RetryConfig controls retry behavior for transient failures.
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NewService creates a service with conservative retry defaults.
func NewService() *Service {
	return &Service{
		retryConfig: RetryConfig{
			MaxRetries:    2,
			BaseDelay:     2 * time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2.0,
		},
	}
}

// WithVerbose returns a copy that includes technical detail in CLI output.
func (s *Service) WithVerbose(verbose bool) *Service {
	copied := *s
	copied.verbose = verbose
	return &copied
}

// ExecuteWithRetry runs the operation, retrying transient failures with
// exponential backoff.
func (s *Service) ExecuteWithRetry(ctx context.Context, operation func() error, operationName string) error {
	var lastErr error

	for attempt := 0; attempt <= s.retryConfig.MaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !s.shouldRetry(err, attempt) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.calculateDelay(attempt)):
		}
	}

	return fmt.Errorf("operation %s failed after %d attempts: %w",
		operationName, s.retryConfig.MaxRetries+1, lastErr)
}

// shouldRetry reports whether the error looks transient.
func (s *Service) shouldRetry(err error, attempt int) bool {
	if attempt >= s.retryConfig.MaxRetries {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryableErrors := []string{
		"timeout", "connection refused", "connection reset", "no such host",
		"502", "503", "504", "429", "temporary", "service unavailable",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}

	return false
}

// calculateDelay computes exponential backoff delay
func (s *Service) calculateDelay(attempt int) time.Duration {
	delay := time.Duration(float64(s.retryConfig.BaseDelay) *
		math.Pow(s.retryConfig.BackoffFactor, float64(attempt)))
	if delay > s.retryConfig.MaxDelay {
		delay = s.retryConfig.MaxDelay
	}
	return delay
}

// GetExitCode maps an error to a process exit code.
func (s *Service) GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "config") || strings.Contains(errStr, "yaml") ||
		strings.Contains(errStr, "validation"):
		return 2 // configuration error
	case strings.Contains(errStr, "browser") || strings.Contains(errStr, "chrome"):
		return 3 // browser launch error
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "no such host"):
		return 4 // network error
	case strings.Contains(errStr, "output") || strings.Contains(errStr, "write") ||
		strings.Contains(errStr, "sqlite"):
		return 5 // output error
	default:
		return 1
	}
}

// FormatErrorForCLI formats an error for terminal display.
func (s *Service) FormatErrorForCLI(err error) string {
	if err == nil {
		return ""
	}

	output := fmt.Sprintf("Error: %v\n", err)
	if s.verbose {
		output += fmt.Sprintf("Exit code: %d\n", s.GetExitCode(err))
	}
	return output
}
