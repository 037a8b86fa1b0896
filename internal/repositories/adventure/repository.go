// Package adventure defines the interface for adventure session persistence
package adventure

//go:generate mockgen -destination=mock/mock_repository.go -package=adventuremock github.com/torchlit/adventure-api/internal/repositories/adventure Repository

import (
	"context"

	"github.com/torchlit/adventure-api/internal/entities"
)

// Repository defines the interface for adventure session persistence
type Repository interface {
	// Get retrieves a session by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the session doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces a session
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete deletes a session by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the session doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a session
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *entities.Session
}

// SaveInput defines the input for saving a session
type SaveInput struct {
	Session *entities.Session
}

// SaveOutput defines the output for saving a session
type SaveOutput struct {
	Session *entities.Session
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct {
	// Empty for now, can be extended later
}
