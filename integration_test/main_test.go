package integration_test

import (
	"os"
	"testing"

	"github.com/hupe1980/collatzgo"
	"github.com/hupe1980/collatzgo/testutil"
)

func TestMain(m *testing.M) {
	if collatzgo.IsWorker() {
		os.Exit(collatzgo.ServeWorker())
	}
	if err := testutil.QuietRaceWorkers(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
