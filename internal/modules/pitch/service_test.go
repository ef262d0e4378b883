package pitch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pitchcraft/core/internal/models"
	"github.com/pitchcraft/core/internal/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeStore is an in-memory Store honoring the (id, ownerID) filter
// contract, including newest-first ordering in Find.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]models.PitchModel
	writes  int
	failAll bool
	clock   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]models.PitchModel),
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeStore) Create(_ context.Context, rec *models.PitchModel) (*models.PitchModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("store unavailable")
	}
	now := f.tick()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	f.records[rec.ID.Hex()] = *rec
	f.writes++
	return rec, nil
}

func (f *fakeStore) FindOneAndUpdate(_ context.Context, id, ownerID string, req Request, generatedText string) (*models.PitchModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("store unavailable")
	}
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, nil
	}
	rec.Type = req.Type
	rec.BusinessName = req.BusinessName
	rec.Industry = req.Industry
	rec.TargetAudience = req.TargetAudience
	rec.Tone = req.Tone
	rec.KeyPoints = req.KeyPoints
	rec.GeneratedText = generatedText
	rec.UpdatedAt = f.tick()
	f.records[id] = rec
	f.writes++
	return &rec, nil
}

func (f *fakeStore) Find(_ context.Context, ownerID string) ([]models.PitchModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("store unavailable")
	}
	out := make([]models.PitchModel, 0)
	for _, rec := range f.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) FindOne(_ context.Context, id, ownerID string) (*models.PitchModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("store unavailable")
	}
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) DeleteOne(_ context.Context, id, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errors.New("store unavailable")
	}
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return 0, nil
	}
	delete(f.records, id)
	return 1, nil
}

// fakeGenerator returns a fixed text or error and counts invocations.
type fakeGenerator struct {
	text  string
	err   error
	calls int
	last  generator.Payload
}

func (f *fakeGenerator) Generate(_ context.Context, p generator.Payload) (string, error) {
	f.calls++
	f.last = p
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func validRequest() Request {
	return Request{
		Type:           "startup",
		BusinessName:   "Acme",
		Industry:       "retail",
		TargetAudience: "teens",
		Tone:           "casual",
		KeyPoints:      []string{"low cost", "fast"},
	}
}

func newTestService(store *fakeStore, gen *fakeGenerator) *Service {
	return NewService(store, gen, zap.NewNop())
}

func TestSubmitCreatesRecord(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{text: "Problem: ...\nSolution: ..."}
	svc := newTestService(store, gen)

	result, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, "Problem: ...\nSolution: ...", result.Pitch)
	assert.NotEmpty(t, result.ID)

	rec, err := svc.Get(context.Background(), result.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.OwnerID)
	assert.Equal(t, "Problem: ...\nSolution: ...", rec.GeneratedText)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, store.writes)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty type", func(r *Request) { r.Type = "" }},
		{"empty businessName", func(r *Request) { r.BusinessName = "  " }},
		{"empty industry", func(r *Request) { r.Industry = "" }},
		{"empty targetAudience", func(r *Request) { r.TargetAudience = "" }},
		{"empty tone", func(r *Request) { r.Tone = "" }},
		{"no keyPoints", func(r *Request) { r.KeyPoints = nil }},
		{"blank keyPoint entry", func(r *Request) { r.KeyPoints = []string{"ok", " "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			gen := &fakeGenerator{text: "text"}
			svc := newTestService(store, gen)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), "user-1", req, "")
			require.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, gen.calls, "generator must not be called on invalid input")
			assert.Zero(t, store.writes, "store must not be written on invalid input")
		})
	}
}

func TestSubmitEmptyOwner(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGenerator{text: "text"})
	_, err := svc.Submit(context.Background(), "", validRequest(), "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestSubmitGenerationFailure(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{err: errors.New("webhook returned 500 Internal Server Error")}
	svc := newTestService(store, gen)

	_, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.ErrorIs(t, err, ErrGeneration)
	assert.Equal(t, 1, gen.calls)
	assert.Zero(t, store.writes, "no partial record on generation failure")
}

func TestSubmitStoreFailureAfterGeneration(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	gen := &fakeGenerator{text: "text"}
	svc := newTestService(store, gen)

	_, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.ErrorIs(t, err, ErrStore)
	assert.Equal(t, 1, gen.calls)
}

func TestSubmitPayloadExcludesIdentity(t *testing.T) {
	gen := &fakeGenerator{text: "text"}
	svc := newTestService(newFakeStore(), gen)

	_, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, generator.Payload{
		Type:           "startup",
		BusinessName:   "Acme",
		Industry:       "retail",
		TargetAudience: "teens",
		Tone:           "casual",
		KeyPoints:      []string{"low cost", "fast"},
	}, gen.last)
}

func TestRegenerationUpdatesInPlace(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{text: "first"}
	svc := newTestService(store, gen)

	created, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.NoError(t, err)

	gen.text = "second"
	req := validRequest()
	req.Tone = "formal"
	updated, err := svc.Submit(context.Background(), "user-1", req, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "regeneration must not change the record id")
	assert.Equal(t, "second", updated.Pitch)

	rec, err := svc.Get(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.OwnerID)
	assert.Equal(t, "formal", rec.Tone)
	assert.Equal(t, "second", rec.GeneratedText)
	assert.Len(t, store.records, 1, "regeneration must not create a duplicate record")
}

func TestRegenerationForeignRecord(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{text: "text"}
	svc := newTestService(store, gen)

	created, err := svc.Submit(context.Background(), "owner", validRequest(), "")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "intruder", validRequest(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	rec, err := svc.Get(context.Background(), created.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "text", rec.GeneratedText, "foreign regeneration must not touch the record")
}

func TestRegenerationUnknownID(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGenerator{text: "text"})
	_, err := svc.Submit(context.Background(), "user-1", validRequest(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetForeignOwner(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGenerator{text: "text"})
	created, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, "user-2")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{text: "text"}
	svc := newTestService(store, gen)

	var ids []string
	for i := 0; i < 3; i++ {
		res, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}
	_, err := svc.Submit(context.Background(), "user-2", validRequest(), "")
	require.NoError(t, err)

	items, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ids[2], items[0].ID.Hex())
	assert.Equal(t, ids[1], items[1].ID.Hex())
	assert.Equal(t, ids[0], items[2].ID.Hex())
}

func TestDeleteNotIdempotentSuccess(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGenerator{text: "text"})
	created, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "user-1"))
	err = svc.Delete(context.Background(), created.ID, "user-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteForeignOwner(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGenerator{text: "text"})
	created, err := svc.Submit(context.Background(), "user-1", validRequest(), "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, "user-2")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), created.ID, "user-1")
	require.NoError(t, err, "record must survive a foreign delete attempt")
}
