package db

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"pgstarter/internal/config/configs"
)

// ErrNotConnected is returned by Connector.Handle before a successful Connect.
var ErrNotConnected = errors.New("database: not connected")

// Factory opens a live handle from a descriptor.
type Factory func(ctx context.Context, cfg configs.Database) (*Handle, error)

// Connector turns one descriptor into at most one Handle. The factory runs
// once no matter how many goroutines call Connect; a failure is final and
// is returned to every caller without retrying.
type Connector struct {
	cfg     configs.Database
	factory Factory

	once   sync.Once
	handle atomic.Pointer[Handle]
	err    error
}

// NewConnector binds a descriptor to a factory. Nothing is opened until
// Connect is called.
func NewConnector(cfg configs.Database, factory Factory) *Connector {
	return &Connector{cfg: cfg, factory: factory}
}

// Connect invokes the factory on first use and returns the shared handle.
func (c *Connector) Connect(ctx context.Context) (*Handle, error) {
	c.once.Do(func() {
		h, err := c.factory(ctx, c.cfg)
		if err != nil {
			c.err = err
			return
		}
		if h == nil {
			c.err = errors.New("database: factory returned no handle")
			return
		}
		c.handle.Store(h)
	})
	if c.err != nil {
		return nil, c.err
	}
	return c.handle.Load(), nil
}

// Handle returns the published handle, or ErrNotConnected when Connect has
// not yet succeeded.
func (c *Connector) Handle() (*Handle, error) {
	if h := c.handle.Load(); h != nil {
		return h, nil
	}
	return nil, ErrNotConnected
}

// Descriptor returns a copy of the descriptor this connector was built from.
func (c *Connector) Descriptor() configs.Database {
	d := c.cfg
	d.Entities = slices.Clone(d.Entities)
	d.Migrations = slices.Clone(d.Migrations)
	return d
}
