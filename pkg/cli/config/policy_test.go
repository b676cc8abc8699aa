package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sentiq/pkg/cli/config"
	model "github.com/secmon-lab/sentiq/pkg/domain/model/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sentiq.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
	return path
}

func TestPolicy(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := config.NewPolicyForTest("").Configure()
		gt.NoError(t, err)
		gt.Equal(t, cfg, model.Default())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, "criticalThreshold: -0.8\nwarningThreshold: -0.5\nsmsNotificationsEnabled: true\n")
		cfg, err := config.NewPolicyForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Equal(t, cfg.CriticalThreshold, -0.8)
		gt.Equal(t, cfg.WarningThreshold, -0.5)
		gt.True(t, cfg.SMSNotificationsEnabled)
		gt.Equal(t, cfg.CooldownPeriod, model.DefaultCooldownMinutes)
	})

	t.Run("invalid thresholds are rejected", func(t *testing.T) {
		path := writeFile(t, "criticalThreshold: 0.2\nwarningThreshold: -0.5\n")
		_, err := config.NewPolicyForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewPolicyForTest(filepath.Join(t.TempDir(), "none.yaml")).Configure()
		gt.Error(t, err)
	})
}

func TestBackend(t *testing.T) {
	t.Run("nil client without URL", func(t *testing.T) {
		client, err := config.NewBackendForTest("", "").Configure()
		gt.NoError(t, err)
		gt.True(t, client == nil)
	})

	t.Run("rejects non HTTP URL", func(t *testing.T) {
		_, err := config.NewBackendForTest("ftp://example.com", "").Configure()
		gt.Error(t, err)
	})

	t.Run("creates client", func(t *testing.T) {
		client, err := config.NewBackendForTest("http://localhost:8080/api", "secret").Configure()
		gt.NoError(t, err)
		gt.NotNil(t, client)
	})
}
