package complaint

import (
	"time"

	"quejas/backend/internal/models"
)

// Outcome is the terminal state of a request-processing state machine. The
// HTTP layer maps each value to a status code and envelope; nothing below
// the handlers knows about HTTP.
type Outcome string

const (
	OutcomeCreated         Outcome = "created"
	OutcomeInvalidInput    Outcome = "invalid_input"
	OutcomeInvalidEntity   Outcome = "invalid_entity"
	OutcomeInvalidStatus   Outcome = "invalid_status"
	OutcomeNotFound        Outcome = "not_found"
	OutcomeTooManyRequests Outcome = "too_many_requests"
	OutcomeStorageError    Outcome = "storage_error"
	OutcomeUpdated         Outcome = "updated"
	OutcomeDeleted         Outcome = "deleted"
)

// Result is the tagged outcome of a write operation: either a success
// carrying its payload or a failure carrying its taxonomy tag and
// user-facing details.
type Result struct {
	Outcome        Outcome
	Complaint      *models.Complaint
	EntityName     string
	PreviousStatus models.Status
	Errors         []string
	Message        string
	RetryAfter     time.Duration
}
