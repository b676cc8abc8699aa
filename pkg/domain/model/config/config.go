package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
)

// Config is the admin configuration of the alert engine.
type Config struct {
	CriticalThreshold float64 `json:"criticalThreshold" yaml:"criticalThreshold"`
	WarningThreshold  float64 `json:"warningThreshold" yaml:"warningThreshold"`
	// CooldownPeriod is in minutes.
	CooldownPeriod int `json:"cooldownPeriod" yaml:"cooldownPeriod"`

	DriverFeedbackEnabled  bool `json:"driverFeedbackEnabled" yaml:"driverFeedbackEnabled"`
	TripFeedbackEnabled    bool `json:"tripFeedbackEnabled" yaml:"tripFeedbackEnabled"`
	AppFeedbackEnabled     bool `json:"appFeedbackEnabled" yaml:"appFeedbackEnabled"`
	MarshalFeedbackEnabled bool `json:"marshalFeedbackEnabled" yaml:"marshalFeedbackEnabled"`

	MaxAlertsPerDriver    int  `json:"maxAlertsPerDriver" yaml:"maxAlertsPerDriver"`
	AlertRetentionDays    int  `json:"alertRetentionDays" yaml:"alertRetentionDays"`
	AutoEscalationEnabled bool `json:"autoEscalationEnabled" yaml:"autoEscalationEnabled"`

	EmailNotificationsEnabled bool `json:"emailNotificationsEnabled" yaml:"emailNotificationsEnabled"`
	SMSNotificationsEnabled   bool `json:"smsNotificationsEnabled" yaml:"smsNotificationsEnabled"`

	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

const (
	DefaultCriticalThreshold = -0.6
	DefaultWarningThreshold  = -0.3
	DefaultCooldownMinutes   = 120
)

// Default returns the configuration the backend ships with.
func Default() Config {
	return Config{
		CriticalThreshold:         DefaultCriticalThreshold,
		WarningThreshold:          DefaultWarningThreshold,
		CooldownPeriod:            DefaultCooldownMinutes,
		DriverFeedbackEnabled:     true,
		TripFeedbackEnabled:       false,
		AppFeedbackEnabled:        false,
		MarshalFeedbackEnabled:    false,
		MaxAlertsPerDriver:        5,
		AlertRetentionDays:        30,
		AutoEscalationEnabled:     true,
		EmailNotificationsEnabled: true,
		SMSNotificationsEnabled:   false,
	}
}

// Thresholds is the part of the configuration the classifier needs.
type Thresholds struct {
	Critical float64
	Warning  float64
}

func (x Config) Thresholds() Thresholds {
	return Thresholds{Critical: x.CriticalThreshold, Warning: x.WarningThreshold}
}

// Validate rejects configurations that must never be persisted.
func (x Config) Validate() error {
	if x.CriticalThreshold >= x.WarningThreshold {
		return goerr.New("critical threshold must be lower than warning threshold",
			goerr.V("critical", x.CriticalThreshold),
			goerr.V("warning", x.WarningThreshold),
			goerr.TV(errs.FieldKey, "criticalThreshold"),
			goerr.T(errs.TagConfigInvalid),
		)
	}
	if x.CooldownPeriod < 1 {
		return goerr.New("cooldown period must be at least 1 minute",
			goerr.V("cooldown", x.CooldownPeriod),
			goerr.TV(errs.FieldKey, "cooldownPeriod"),
			goerr.T(errs.TagConfigInvalid),
		)
	}
	if x.MaxAlertsPerDriver < 1 {
		return goerr.New("max alerts per driver must be positive",
			goerr.V("max_alerts_per_driver", x.MaxAlertsPerDriver),
			goerr.TV(errs.FieldKey, "maxAlertsPerDriver"),
			goerr.T(errs.TagConfigInvalid),
		)
	}
	if x.AlertRetentionDays < 1 {
		return goerr.New("alert retention must be at least 1 day",
			goerr.V("alert_retention_days", x.AlertRetentionDays),
			goerr.TV(errs.FieldKey, "alertRetentionDays"),
			goerr.T(errs.TagConfigInvalid),
		)
	}
	return nil
}
