package request_id_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sentiq/pkg/utils/request_id"
)

func TestEnsure(t *testing.T) {
	t.Run("keeps given ID", func(t *testing.T) {
		ctx, id := request_id.Ensure(t.Context(), "req-1")
		gt.Equal(t, id, "req-1")
		gt.Equal(t, request_id.FromContext(ctx), "req-1")
	})

	t.Run("generates ID", func(t *testing.T) {
		ctx, id := request_id.Ensure(t.Context(), "")
		gt.NotEqual(t, id, "")
		gt.Equal(t, request_id.FromContext(ctx), id)
	})

	t.Run("empty without ID", func(t *testing.T) {
		gt.Equal(t, request_id.FromContext(t.Context()), "")
	})
}
