package sandbox

import (
	"context"
	"errors"
)

// Handle is a durable reference to a named component. The store
// assigns a fresh physical id on every rewrite, so the handle keeps
// only the name and resolves the current id on each operation.
type Handle struct {
	client *Client
	name   string
}

// NewHandle binds a logical component name to a client.
func NewHandle(client *Client, name string) *Handle {
	return &Handle{client: client, name: name}
}

// Name returns the logical component name.
func (h *Handle) Name() string { return h.name }

// Resolve returns the current record for the handle's name.
func (h *Handle) Resolve(ctx context.Context) (*Component, error) {
	return h.client.GetByName(ctx, h.name)
}

// Upsert writes code under the handle's name. An existing record is
// updated in place, otherwise a new one is created.
func (h *Handle) Upsert(ctx context.Context, code, prompt string) (*SaveResult, error) {
	current, err := h.Resolve(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return h.client.Create(ctx, h.name, code, prompt)
		}
		return nil, err
	}
	return h.client.Update(ctx, current.ID, code, h.name, prompt)
}

// Delete removes the component the handle currently resolves to.
func (h *Handle) Delete(ctx context.Context) error {
	current, err := h.Resolve(ctx)
	if err != nil {
		return err
	}
	return h.client.Delete(ctx, current.ID)
}
