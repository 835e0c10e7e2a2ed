// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"testing"
)

// SkipNetworkEnv disables tests that open sockets, including loopback
// listeners from httptest.
const SkipNetworkEnv = "PRICEDISPLAY_TEST_SKIP_NETWORK"

// SkipIfNoNetwork skips the test when SkipNetworkEnv is set. Sandboxed
// builders often forbid binding even to localhost.
func SkipIfNoNetwork(t testing.TB) {
	t.Helper()
	if os.Getenv(SkipNetworkEnv) != "" {
		t.Skipf("skipping network test: %s is set", SkipNetworkEnv)
	}
}
