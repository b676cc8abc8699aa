package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Client errors (4xx)
	TagNotFound          = goerr.NewTag("not_found")          // 404
	TagValidation        = goerr.NewTag("validation")         // 400
	TagInvalidRequest    = goerr.NewTag("invalid_request")    // 400
	TagInvalidTransition = goerr.NewTag("invalid_transition") // 409
	TagConfigInvalid     = goerr.NewTag("config_invalid")     // 422
	TagPassInProgress    = goerr.NewTag("pass_in_progress")   // 409

	// Server errors (5xx)
	TagInternal = goerr.NewTag("internal") // 500
	TagDatabase = goerr.NewTag("database") // 500
	TagUpstream = goerr.NewTag("upstream") // 502
	TagTimeout  = goerr.NewTag("timeout")  // 504
)

func IsNotFound(err error) bool {
	return goerr.HasTag(err, TagNotFound)
}

func IsValidation(err error) bool {
	return goerr.HasTag(err, TagValidation)
}

func IsInvalidTransition(err error) bool {
	return goerr.HasTag(err, TagInvalidTransition)
}

func IsConfigInvalid(err error) bool {
	return goerr.HasTag(err, TagConfigInvalid)
}

func IsUpstream(err error) bool {
	return goerr.HasTag(err, TagUpstream) || goerr.HasTag(err, TagTimeout)
}

func IsPassInProgress(err error) bool {
	return goerr.HasTag(err, TagPassInProgress)
}
