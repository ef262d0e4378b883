package pitch

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchcraft/core/internal/models"
	"github.com/pitchcraft/core/internal/pkg/generator"
	"go.uber.org/zap"
)

// TextGenerator is the outbound generation call the lifecycle depends on.
// *generator.Client satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, p generator.Payload) (string, error)
}

// Store is the persistence contract for pitch records. All lookups that
// target a single record filter by (id, ownerID) together; a miss is
// reported as (nil, nil) rather than an error.
type Store interface {
	Create(ctx context.Context, rec *models.PitchModel) (*models.PitchModel, error)
	FindOneAndUpdate(ctx context.Context, id, ownerID string, req Request, generatedText string) (*models.PitchModel, error)
	Find(ctx context.Context, ownerID string) ([]models.PitchModel, error)
	FindOne(ctx context.Context, id, ownerID string) (*models.PitchModel, error)
	DeleteOne(ctx context.Context, id, ownerID string) (int64, error)
}

// Service is the pitch lifecycle manager: it validates a request, delegates
// to the generation client, and persists the result under the verified
// owner. Exactly one generation call and at most one write happen per
// invocation; there is no built-in retry.
type Service struct {
	store Store
	gen   TextGenerator
	log   *zap.Logger
}

func NewService(store Store, gen TextGenerator, log *zap.Logger) *Service {
	return &Service{store: store, gen: gen, log: log}
}

// Submit validates the request, generates the pitch text, and persists it.
// With an empty existingID a new record is created for ownerID; otherwise
// the record matching (existingID, ownerID) is updated in place. Validation
// failures are reported before the generation call is made.
func (s *Service) Submit(ctx context.Context, ownerID string, req Request, existingID string) (*SubmitResult, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner identity is required", ErrValidation)
	}
	normalized, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	// The generation payload carries only the domain fields; owner identity
	// and record ids never leave the service.
	payload := generator.Payload{
		Type:           normalized.Type,
		BusinessName:   normalized.BusinessName,
		Industry:       normalized.Industry,
		TargetAudience: normalized.TargetAudience,
		Tone:           normalized.Tone,
		KeyPoints:      normalized.KeyPoints,
	}

	text, err := s.gen.Generate(ctx, payload)
	if err != nil {
		s.log.Warn("generation call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if existingID == "" {
		rec := models.PitchModel{
			OwnerID:        ownerID,
			Type:           normalized.Type,
			BusinessName:   normalized.BusinessName,
			Industry:       normalized.Industry,
			TargetAudience: normalized.TargetAudience,
			Tone:           normalized.Tone,
			KeyPoints:      normalized.KeyPoints,
			GeneratedText:  text,
		}
		created, err := s.store.Create(ctx, &rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		return &SubmitResult{Pitch: text, ID: created.ID.Hex()}, nil
	}

	updated, err := s.store.FindOneAndUpdate(ctx, existingID, ownerID, normalized, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return &SubmitResult{Pitch: text, ID: updated.ID.Hex()}, nil
}

// List returns all pitches owned by ownerID, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.PitchModel, error) {
	items, err := s.store.Find(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return items, nil
}

// Get returns the pitch matching (id, ownerID).
func (s *Service) Get(ctx context.Context, id, ownerID string) (*models.PitchModel, error) {
	rec, err := s.store.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Delete removes the pitch matching (id, ownerID). A repeated delete
// reports ErrNotFound, not success.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	deleted, err := s.store.DeleteOne(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// validateRequest trims every field and rejects the request if any required
// field (or any key point) ends up empty.
func validateRequest(req Request) (Request, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"type", &req.Type},
		{"businessName", &req.BusinessName},
		{"industry", &req.Industry},
		{"targetAudience", &req.TargetAudience},
		{"tone", &req.Tone},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return Request{}, fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}

	if len(req.KeyPoints) == 0 {
		return Request{}, fmt.Errorf("%w: keyPoints must not be empty", ErrValidation)
	}
	points := make([]string, len(req.KeyPoints))
	for i, p := range req.KeyPoints {
		p = strings.TrimSpace(p)
		if p == "" {
			return Request{}, fmt.Errorf("%w: keyPoints must not contain empty entries", ErrValidation)
		}
		points[i] = p
	}
	req.KeyPoints = points
	return req, nil
}
