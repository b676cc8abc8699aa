package event

import "github.com/secmon-lab/sentiq/pkg/domain/model/alert"

// AlertEvent is published whenever the alert set changes.
type AlertEvent interface {
	isAlertEvent()
}

// AlertCreatedEvent is fired when a monitoring pass creates an alert
type AlertCreatedEvent struct {
	Alert *alert.Alert
}

func (e *AlertCreatedEvent) isAlertEvent() {}

// AlertUpdatedEvent is fired after a lifecycle action succeeds
type AlertUpdatedEvent struct {
	Action alert.Action
	Alert  *alert.Alert
}

func (e *AlertUpdatedEvent) isAlertEvent() {}

// AlertsClearedEvent is fired when the local bucket is emptied
type AlertsClearedEvent struct {
	Count int
}

func (e *AlertsClearedEvent) isAlertEvent() {}
