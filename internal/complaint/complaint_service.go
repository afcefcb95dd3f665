// Package complaint provides the core logic for handling citizen
// complaints: the submission pipeline (rate gate, validation, referential
// check, persistence), status updates and entity resolution.
package complaint

import (
	"context"
	"errors"
	"strings"
	"time"

	"quejas/backend/internal/challenge"
	"quejas/backend/internal/models"
	"quejas/backend/internal/ratelimit"
	"quejas/backend/internal/storage"
	"quejas/backend/internal/validation"
)

// Service handles the business logic for complaints.
type Service struct {
	Storage    storage.Storage
	Limiter    *ratelimit.Limiter
	Validator  *validation.Validator
	Challenges *challenge.Issuer // nil when the math challenge is disabled

	// LookupExact switches entity-by-name resolution from the lenient
	// substring policy to exact matching.
	LookupExact bool
}

// NewService creates a new complaint service.
func NewService(s storage.Storage, l *ratelimit.Limiter, v *validation.Validator) *Service {
	return &Service{Storage: s, Limiter: l, Validator: v}
}

// SubmitRequest carries one submission through the pipeline. EntityID stays
// loosely typed until validation coerces it.
type SubmitRequest struct {
	EntityID        any
	Description     string
	OriginIP        string
	UserAgent       string
	ChallengeToken  string
	ChallengeAnswer int
}

// Submit runs the write state machine: rate-limit gate, challenge check,
// static validation, referential validation, persist. Every exit is a
// terminal state; nothing is written before the persist step.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) Result {
	now := time.Now()

	if s.Limiter != nil && !s.Limiter.Allow(req.OriginIP, now) {
		return Result{
			Outcome:    OutcomeTooManyRequests,
			Message:    "Demasiadas solicitudes. Intente de nuevo más tarde.",
			RetryAfter: s.Limiter.RetryAfter(req.OriginIP, now),
		}
	}

	if s.Challenges != nil {
		if err := s.Challenges.Verify(req.ChallengeToken, req.ChallengeAnswer); err != nil {
			return Result{
				Outcome: OutcomeInvalidInput,
				Errors:  []string{"La verificación anti-bot falló. Resuelva la operación nuevamente."},
				Message: "Datos inválidos",
			}
		}
	}

	if errs := s.Validator.Validate(validation.Payload{
		EntityID:    req.EntityID,
		Description: req.Description,
	}); len(errs) > 0 {
		return Result{Outcome: OutcomeInvalidInput, Errors: errs, Message: "Datos inválidos"}
	}

	// Validation guarantees this parses.
	entityID, err := validation.ParseEntityID(req.EntityID)
	if err != nil {
		return Result{Outcome: OutcomeInvalidInput, Errors: []string{err.Error()}, Message: "Datos inválidos"}
	}

	entity, err := s.Storage.GetEntityByID(ctx, entityID)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			return Result{Outcome: OutcomeInvalidEntity, Message: "Entidad no válida"}
		}
		return Result{Outcome: OutcomeStorageError, Message: "Error creando queja"}
	}

	c := &models.Complaint{
		EntityID:    entityID,
		Description: strings.TrimSpace(req.Description),
		OriginIP:    req.OriginIP,
		UserAgent:   req.UserAgent,
	}
	if err := s.Storage.CreateComplaint(ctx, c); err != nil {
		return Result{Outcome: OutcomeStorageError, Message: "Error creando queja"}
	}

	return Result{
		Outcome:    OutcomeCreated,
		Complaint:  c,
		EntityName: entity.Name,
		Message:    "Queja creada exitosamente",
	}
}

// UpdateStatus validates the new status, confirms the complaint exists and
// persists the change. No retry on failure: a duplicate write could not
// double-submit here, but the policy is uniform across mutations.
func (s *Service) UpdateStatus(ctx context.Context, id uint, newStatus string) Result {
	status := models.Status(newStatus)
	if !status.IsValid() {
		return Result{Outcome: OutcomeInvalidStatus, Message: "Estado inválido"}
	}

	existing, err := s.Storage.GetComplaintByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrComplaintNotFound) {
			return Result{Outcome: OutcomeNotFound, Message: "Queja no encontrada"}
		}
		return Result{Outcome: OutcomeStorageError, Message: "Error actualizando estado"}
	}

	ok, err := s.Storage.UpdateStatus(ctx, id, status)
	if err != nil {
		return Result{Outcome: OutcomeStorageError, Message: "Error actualizando estado"}
	}
	if !ok {
		// Deleted between the existence check and the update.
		return Result{Outcome: OutcomeNotFound, Message: "Queja no encontrada"}
	}

	updated := *existing
	updated.Status = status
	return Result{
		Outcome:        OutcomeUpdated,
		Complaint:      &updated,
		PreviousStatus: existing.Status,
		Message:        "Estado actualizado exitosamente",
	}
}

// Delete removes a complaint permanently. Hard delete, no tombstone.
func (s *Service) Delete(ctx context.Context, id uint) Result {
	ok, err := s.Storage.DeleteComplaint(ctx, id)
	if err != nil {
		return Result{Outcome: OutcomeStorageError, Message: "Error eliminando queja"}
	}
	if !ok {
		return Result{Outcome: OutcomeNotFound, Message: "Queja no encontrada"}
	}
	return Result{Outcome: OutcomeDeleted, Message: "Queja eliminada exitosamente"}
}

// ResolveEntity turns a textual reference into an entity: a numeric string
// is treated as an id, anything else goes through name lookup under the
// configured matching policy.
func (s *Service) ResolveEntity(ctx context.Context, ref string) (*models.Entity, error) {
	if id, err := validation.ParseEntityID(ref); err == nil {
		return s.Storage.GetEntityByID(ctx, id)
	}
	return s.Storage.FindEntityByName(ctx, ref, s.LookupExact)
}
