package errs

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// IDs
	AlertIDKey   = goerr.NewTypedKey[string]("alert_id")
	DriverIDKey  = goerr.NewTypedKey[string]("driver_id")
	ManagerIDKey = goerr.NewTypedKey[string]("manager_id")
	RequestIDKey = goerr.NewTypedKey[string]("request_id")

	// Values
	SeverityKey   = goerr.NewTypedKey[string]("severity")
	StatusKey     = goerr.NewTypedKey[string]("status")
	ActionKey     = goerr.NewTypedKey[string]("action")
	OriginKey     = goerr.NewTypedKey[string]("origin")
	FieldKey      = goerr.NewTypedKey[string]("field")
	RepositoryKey = goerr.NewTypedKey[string]("repository")
	CollectionKey = goerr.NewTypedKey[string]("collection")
	CountKey      = goerr.NewTypedKey[int]("count")
	DurationKey   = goerr.NewTypedKey[time.Duration]("duration")

	// External services
	EndpointKey   = goerr.NewTypedKey[string]("endpoint")
	HTTPStatusKey = goerr.NewTypedKey[int]("http_status")
	URLKey        = goerr.NewTypedKey[string]("url")
)
