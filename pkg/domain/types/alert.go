package types

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
)

// AlertID identifies an alert. Remote alerts carry the numeric id issued by
// the backend, local alerts carry an id produced by NewLocalAlertID.
type AlertID string

func (x AlertID) String() string {
	return string(x)
}

const (
	EmptyAlertID AlertID = ""

	localAlertIDPrefix = "alert-"
	localRandomLength  = 9
)

// NewLocalAlertID returns an id in the form alert-<unix millis>-<random>.
func NewLocalAlertID(ctx context.Context) AlertID {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:localRandomLength]
	return AlertID(fmt.Sprintf("%s%d-%s", localAlertIDPrefix, clock.Now(ctx).UnixMilli(), random))
}

func (x AlertID) Validate() error {
	if x == EmptyAlertID {
		return goerr.New("empty alert ID")
	}
	return nil
}

// Origin tells which store owns an alert record.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
)

func (x Origin) String() string {
	return string(x)
}

func (x Origin) Validate() error {
	switch x {
	case OriginRemote, OriginLocal:
		return nil
	}
	return goerr.New("invalid alert origin", goerr.V("origin", x))
}

// DriverID is the opaque identifier of a driver. Backends may send it as a
// number or a string, both are normalized to the textual form.
type DriverID string

func (x DriverID) String() string {
	return string(x)
}

func (x *DriverID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*x = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return goerr.Wrap(err, "failed to decode driver ID", goerr.V("data", s))
		}
		*x = DriverID(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return goerr.Wrap(err, "failed to decode driver ID", goerr.V("data", s))
		}
		*x = DriverID(n.String())
	}
	return nil
}

// ManagerID identifies the operator acting on an alert.
type ManagerID string

func (x ManagerID) String() string {
	return string(x)
}
