package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". Helpers
// that open or install a database call this first so a stray environment
// can never point a suite at a real store.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("refusing to run with GO_ENV=%q; set GO_ENV=test before running tests", env)
	}
}

// MustSetTestEnvironment forces GO_ENV=test. Call it from TestMain or a
// suite's SetupSuite before loading configuration.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
	RequireTestEnvironment(t)
}
