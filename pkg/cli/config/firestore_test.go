package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sentiq/pkg/cli/config"
	"github.com/secmon-lab/sentiq/pkg/repository"
)

func TestFirestore(t *testing.T) {
	t.Run("not configured without project ID", func(t *testing.T) {
		cfg := &config.Firestore{}
		gt.Equal(t, cfg.ProjectID(), "")
		gt.False(t, cfg.IsConfigured())

		_, err := cfg.Configure(t.Context())
		gt.Error(t, err)
	})

	t.Run("falls back to memory", func(t *testing.T) {
		cfg := &config.Firestore{}
		repo, closer, err := cfg.Repository(t.Context())
		gt.NoError(t, err).Required()
		defer closer()

		_, ok := repo.(*repository.Memory)
		gt.True(t, ok)
	})
}
