package partner

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository looks up clients
type ClientRepository interface {
	// FindByID returns shared.ErrNotFound when the client does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	Save(ctx context.Context, client *Client) error
}

// ProfessionalRepository looks up professionals
type ProfessionalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Professional, error)
	Save(ctx context.Context, professional *Professional) error
}
