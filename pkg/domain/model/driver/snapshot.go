package driver

import "github.com/secmon-lab/sentiq/pkg/domain/types"

// Snapshot is the per-driver score state consumed by one monitoring pass.
type Snapshot struct {
	DriverID   types.DriverID `json:"driverId"`
	DriverName string         `json:"driverName,omitempty"`
	EmaScore   *float64       `json:"emaScore,omitempty"`
}

// Score returns the EMA score, treating a missing score as 0.
func (x Snapshot) Score() float64 {
	if x.EmaScore == nil {
		return 0
	}
	return *x.EmaScore
}
