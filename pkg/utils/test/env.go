package test

import (
	"os"
	"strings"
	"testing"
)

// EnvVars holds environment variables an integration test depends on.
type EnvVars struct {
	vars map[string]string
}

// NewEnvVars reads keys from the environment and skips the test, naming
// every missing key, when any of them is unset.
func NewEnvVars(t *testing.T, keys ...string) EnvVars {
	t.Helper()

	e := EnvVars{vars: make(map[string]string, len(keys))}
	var missing []string
	for _, key := range keys {
		value, ok := os.LookupEnv(key)
		if !ok || value == "" {
			missing = append(missing, key)
			continue
		}
		e.vars[key] = value
	}

	if len(missing) > 0 {
		t.Skipf("skipping test because %s is not set", strings.Join(missing, ", "))
	}
	return e
}

// Get returns the value of key. Reading a key not passed to NewEnvVars is a
// bug in the test and panics.
func (e EnvVars) Get(key string) string {
	v, ok := e.vars[key]
	if !ok {
		panic("env var " + key + " was not requested")
	}
	return v
}
