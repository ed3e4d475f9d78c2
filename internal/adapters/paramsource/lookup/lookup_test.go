package lookup

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pkpd-profile/internal/ports/paramsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcSource func(ctx context.Context, name string) (paramsource.Params, error)

func (f funcSource) Lookup(ctx context.Context, name string) (paramsource.Params, error) {
	return f(ctx, name)
}

func notFound(context.Context, string) (paramsource.Params, error) {
	return paramsource.Params{}, paramsource.ErrNotFound
}

func TestChain_FallsThroughOnlyOnNotFound(t *testing.T) {
	remote := funcSource(func(_ context.Context, name string) (paramsource.Params, error) {
		return paramsource.Params{Name: name, Vd: 0.7, HalfLife: 5, Origin: "remote"}, nil
	})

	p, err := Chain{funcSource(notFound), nil, remote}.Lookup(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "remote", p.Origin)

	boom := errors.New("db down")
	failing := funcSource(func(context.Context, string) (paramsource.Params, error) {
		return paramsource.Params{}, boom
	})
	_, err = Chain{failing, remote}.Lookup(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	_, err = Chain{funcSource(notFound)}.Lookup(context.Background(), "x")
	assert.ErrorIs(t, err, paramsource.ErrNotFound)
}

func TestCache_DeduplicatesAndExpires(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	src := funcSource(func(_ context.Context, name string) (paramsource.Params, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return paramsource.Params{Name: name, Vd: 1, HalfLife: 2}, nil
	})

	c := NewCache(src, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.Lookup(context.Background(), "Cefepime")
			assert.NoError(t, err)
			assert.Equal(t, 2.0, p.HalfLife)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	_, err := c.Lookup(context.Background(), "cefepime")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	now = now.Add(2 * time.Minute)
	_, err = c.Lookup(context.Background(), "cefepime")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCache_DoesNotCacheUpstreamErrors(t *testing.T) {
	var calls int32
	src := funcSource(func(context.Context, string) (paramsource.Params, error) {
		atomic.AddInt32(&calls, 1)
		return paramsource.Params{}, paramsource.ErrUpstream
	})
	c := NewCache(src, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := c.Lookup(context.Background(), "x")
		assert.ErrorIs(t, err, paramsource.ErrUpstream)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	nf := NewCache(funcSource(notFound), time.Minute)
	_, err := nf.Lookup(context.Background(), "")
	assert.ErrorIs(t, err, paramsource.ErrNotFound)
}

func TestCache_BoundedAndPrunesExpired(t *testing.T) {
	c := NewCache(funcSource(notFound), time.Minute)
	c.maxEntries = 3
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for _, name := range []string{"a", "b", "c"} {
		_, err := c.Lookup(context.Background(), name)
		assert.ErrorIs(t, err, paramsource.ErrNotFound)
		now = now.Add(time.Second)
	}
	require.Len(t, c.entries, 3)

	// lleno: sale la entrada que vence primero
	_, _ = c.Lookup(context.Background(), "d")
	require.Len(t, c.entries, 3)
	assert.NotContains(t, c.entries, "a")
	assert.Contains(t, c.entries, "d")

	// vencidas: se limpian todas antes de insertar
	now = now.Add(2 * time.Minute)
	_, _ = c.Lookup(context.Background(), "e")
	assert.Len(t, c.entries, 1)
	assert.Contains(t, c.entries, "e")
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	src := funcSource(func(ctx context.Context, name string) (paramsource.Params, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return paramsource.Params{}, err
		}
		return paramsource.Params{Name: name, Vd: 1, HalfLife: 3}, nil
	})
	c := NewCache(src, time.Minute)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Lookup(first, "meropenem")
		firstErr <- err
	}()
	<-started

	second := make(chan error, 1)
	go func() {
		p, err := c.Lookup(context.Background(), "meropenem")
		if err == nil && p.HalfLife != 3 {
			err = errors.New("unexpected params")
		}
		second <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	close(release)
	assert.NoError(t, <-second)
}
