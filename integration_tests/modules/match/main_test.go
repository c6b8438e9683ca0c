package matchintegrationtests

import (
	"log"
	"os"
	"testing"

	"github.com/Black-And-White-Club/match-tracker/integration_tests/testutils"
)

// TestMain runs the package with APP_ENV=test and tears the shared containers down afterwards.
func TestMain(m *testing.M) {
	oldAppEnv := os.Getenv("APP_ENV")
	os.Setenv("APP_ENV", "test")

	exitCode := m.Run()

	testutils.ShutdownSharedEnv()
	os.Setenv("APP_ENV", oldAppEnv)
	log.Printf("TestMain: finished with exit code: %d", exitCode)
	os.Exit(exitCode)
}
