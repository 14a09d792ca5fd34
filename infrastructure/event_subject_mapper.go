package infrastructure

import (
	"fmt"

	"sweephouse/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "users.balance_changed"
	case events.EventTypeUserCreated:
		return "users.created"
	case events.EventTypePlayerSeated:
		return "poker.player_seated"
	case events.EventTypeHandCompleted:
		return "poker.hand_completed"
	case events.EventTypeParlayPlaced:
		return "parlays.placed"
	case events.EventTypeParlayResolved:
		return "parlays.resolved"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"users.balance_changed",
		"users.created",
		"poker.player_seated",
		"poker.hand_completed",
		"parlays.placed",
		"parlays.resolved",
	}
}
