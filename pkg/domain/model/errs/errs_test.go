package errs_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
)

func TestTagHelpers(t *testing.T) {
	base := goerr.New("alert not found", goerr.T(errs.TagNotFound))
	wrapped := goerr.Wrap(base, "failed to acknowledge alert")

	gt.True(t, errs.IsNotFound(wrapped))
	gt.False(t, errs.IsValidation(wrapped))
	gt.False(t, errs.IsInvalidTransition(wrapped))

	gt.True(t, errs.IsUpstream(goerr.New("backend down", goerr.T(errs.TagUpstream))))
	gt.True(t, errs.IsUpstream(goerr.New("backend slow", goerr.T(errs.TagTimeout))))
	gt.True(t, errs.IsConfigInvalid(goerr.New("bad thresholds", goerr.T(errs.TagConfigInvalid))))
	gt.True(t, errs.IsPassInProgress(goerr.Wrap(goerr.New("busy", goerr.T(errs.TagPassInProgress)), "check skipped")))
}

func TestHandle(t *testing.T) {
	// Sentry is not initialized, Handle must only log.
	errs.Handle(t.Context(), goerr.New("test error", goerr.V("key", "value")))
}
