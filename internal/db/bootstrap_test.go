package db

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgstarter/internal/config/configs"
)

func testDescriptor() configs.Database {
	return configs.Database{
		Type:       "postgres",
		Host:       "localhost",
		Port:       5432,
		Username:   "postgres",
		Password:   "postgres",
		Database:   "postgres",
		SSLMode:    "disable",
		Entities:   []string{"internal/core/domain/*.go"},
		Migrations: []string{"db/migrations/*.sql"},
	}
}

func TestConnectorInvokesFactoryOnce(t *testing.T) {
	var calls atomic.Int32
	want := &Handle{Pool: &pgxpool.Pool{}}
	c := NewConnector(testDescriptor(), func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		calls.Add(1)
		return want, nil
	})

	const callers = 32
	var wg sync.WaitGroup
	got := make([]*Handle, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := c.Connect(context.Background())
			assert.NoError(t, err)
			got[i] = h
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, h := range got {
		assert.Same(t, want, h)
	}
	h, err := c.Handle()
	require.NoError(t, err)
	assert.Same(t, want, h)
}

func TestConnectorPassesDescriptor(t *testing.T) {
	d := testDescriptor()
	d.Host = "db.internal"
	var seen configs.Database
	c := NewConnector(d, func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		seen = cfg
		return &Handle{}, nil
	})
	_, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, d, seen)
}

func TestConnectorFailureIsFinal(t *testing.T) {
	boom := errors.New("connection refused")
	var calls atomic.Int32
	c := NewConnector(testDescriptor(), func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		calls.Add(1)
		return nil, boom
	})

	h, err := c.Connect(context.Background())
	assert.Nil(t, h)
	assert.Same(t, boom, err)

	h, err = c.Connect(context.Background())
	assert.Nil(t, h)
	assert.Same(t, boom, err)
	assert.Equal(t, int32(1), calls.Load(), "no retry")

	h, err = c.Handle()
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnectorNilHandle(t *testing.T) {
	c := NewConnector(testDescriptor(), func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		return nil, nil
	})
	_, err := c.Connect(context.Background())
	assert.Error(t, err)
	_, err = c.Handle()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnectorHandleBeforeConnect(t *testing.T) {
	c := NewConnector(testDescriptor(), func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		t.Fatal("factory must not run")
		return nil, nil
	})
	_, err := c.Handle()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnectorDescriptorIsCopy(t *testing.T) {
	c := NewConnector(testDescriptor(), nil)
	d := c.Descriptor()
	d.Entities[0] = "changed"
	d.Host = "changed"
	assert.Equal(t, testDescriptor(), c.Descriptor())
}

func TestConnectUnreachableHost(t *testing.T) {
	d := testDescriptor()
	d.Host = "127.0.0.1"
	d.Port = 1

	var calls atomic.Int32
	open := Open(discardLogger())
	c := NewConnector(d, func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		calls.Add(1)
		return open(ctx, cfg)
	})

	h, err := c.Connect(context.Background())
	assert.Error(t, err)
	assert.Nil(t, h)

	_, err = c.Connect(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.Handle()
	assert.ErrorIs(t, err, ErrNotConnected)
}
