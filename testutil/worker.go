package testutil

import (
	"os"
	"strings"
)

const raceExitDelay = "atexit_sleep_ms="

// WorkerRaceOptions returns gorace with the race runtime's exit delay set to
// zero, keeping any options already present. An explicit delay is kept.
func WorkerRaceOptions(gorace string) string {
	gorace = strings.TrimSpace(gorace)
	if strings.Contains(gorace, raceExitDelay) {
		return gorace
	}
	if gorace == "" {
		return raceExitDelay + "0"
	}
	return gorace + " " + raceExitDelay + "0"
}

// QuietRaceWorkers sets GORACE for the worker processes a test binary
// starts. Race-instrumented workers otherwise sleep one second on exit.
// The running binary is unaffected; it read GORACE at startup.
func QuietRaceWorkers() error {
	return os.Setenv("GORACE", WorkerRaceOptions(os.Getenv("GORACE")))
}
