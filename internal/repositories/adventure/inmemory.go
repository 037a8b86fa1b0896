package adventure

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
)

// inMemoryRepository stores sessions as marshaled bytes so callers never
// share state with the store, matching the Redis implementation's isolation.
type inMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewInMemoryRepository creates an in-memory adventure session repository,
// suitable for single-process play and tests
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		sessions: make(map[string][]byte),
	}
}

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	data, ok := r.sessions[input.ID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("session with ID %s not found", input.ID)
	}

	var session entities.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	return &GetOutput{Session: &session}, nil
}

func (r *inMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	r.mu.Lock()
	r.sessions[input.Session.ID] = data
	r.mu.Unlock()

	return &SaveOutput{Session: input.Session}, nil
}

func (r *inMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[input.ID]; !ok {
		return nil, errors.NotFoundf("session with ID %s not found", input.ID)
	}
	delete(r.sessions, input.ID)

	return &DeleteOutput{}, nil
}
