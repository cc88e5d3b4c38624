package partner

import (
	"strings"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
)

// Client is a customer of the marketplace who commissions and rates jobs.
// Profile management lives outside this service; the core only looks clients up.
type Client struct {
	shared.BaseAggregateRoot
	Name   string
	Email  string
	Active bool
}

// NewClient creates an active client
func NewClient(name, email string) (*Client, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Active:            true,
	}, nil
}

// IsActive reports whether the client has not been logically deleted
func (c *Client) IsActive() bool {
	return c.Active
}

// Deactivate logically deletes the client
func (c *Client) Deactivate() {
	if !c.Active {
		return
	}
	c.Active = false
	c.MarkModified()
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
