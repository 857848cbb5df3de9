// Package dashboard holds the presentation-side state of the inventory
// dashboard: the current filter, the last fetched lists and the figures
// derived from them.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"pharmastock/internal/client"
	"pharmastock/internal/expiry"
	"pharmastock/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// API is the part of *client.Client the dashboard uses.
type API interface {
	ListProducts(ctx context.Context, filter client.Filter) ([]model.Product, error)
	ListExpiringProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, p model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// State is one rendered view. It is never modified once published; every
// load builds a new one.
type State struct {
	Filter   client.Filter
	Products []model.Product
	Expiring []model.Product
	Stats    expiry.Summary
	Err      error
}

type Controller struct {
	api API

	mu    sync.Mutex
	state State

	// Generation of the latest Reload; older results are dropped.
	listGen  atomic.Uint64
	alertGen atomic.Uint64
}

func New(api API) *Controller {
	return &Controller{api: api}
}

// State returns the current snapshot. The slices must not be modified.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetFilter replaces the filter and reloads the list.
func (c *Controller) SetFilter(ctx context.Context, f client.Filter) error {
	c.mu.Lock()
	c.state.Filter = f
	c.mu.Unlock()
	return c.Reload(ctx)
}

// Reload fetches the list for the current filter and recomputes the stats.
// On failure the list is emptied, never left stale. A Reload overtaken by a
// newer one returns without touching the state.
func (c *Controller) Reload(ctx context.Context) error {
	gen := c.listGen.Add(1)
	filter := c.State().Filter

	products, err := c.api.ListProducts(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listGen.Load() != gen {
		zap.L().Debug("dashboard: dropping superseded list", zap.Uint64("generation", gen))
		return nil
	}

	next := c.state
	next.Filter = filter
	next.Err = err
	if err != nil {
		next.Products = []model.Product{}
	} else {
		if products == nil {
			products = []model.Product{}
		}
		next.Products = products
	}
	next.Stats = expiry.Summarize(next.Products)
	c.state = next
	return err
}

// LoadAlerts fetches the expiration alert list. Failures only log a warning
// and leave the list empty.
func (c *Controller) LoadAlerts(ctx context.Context) {
	gen := c.alertGen.Add(1)

	expiring, err := c.api.ListExpiringProducts(ctx)
	if err != nil {
		zap.L().Warn("dashboard: load expiry alerts", zap.Error(err))
		expiring = []model.Product{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alertGen.Load() != gen {
		return
	}
	next := c.state
	next.Expiring = expiring
	c.state = next
}

// Create adds p, then reloads. Errors are returned as is and nothing is
// retried.
func (c *Controller) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	created, err := c.api.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	return created, c.Reload(ctx)
}

func (c *Controller) Update(ctx context.Context, id uuid.UUID, p model.Product) (*model.Product, error) {
	updated, err := c.api.UpdateProduct(ctx, id, p)
	if err != nil {
		return nil, err
	}
	return updated, c.Reload(ctx)
}

func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return c.Reload(ctx)
}
