package verify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_NewRequestSupersedesInFlight(t *testing.T) {
	var s Surface
	started := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- s.Do(context.Background(), func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		})
	}()
	<-started

	err := s.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	select {
	case err := <-firstDone:
		assert.True(t, errors.Is(err, ErrSuperseded))
	case <-time.After(2 * time.Second):
		t.Fatal("first request was not cancelled")
	}
}

func TestSurface_PassesThroughError(t *testing.T) {
	var s Surface
	want := errors.New("boom")
	err := s.Do(context.Background(), func(ctx context.Context) error { return want })
	assert.Same(t, want, err)

	// sequential calls do not supersede each other
	assert.NoError(t, s.Do(context.Background(), func(ctx context.Context) error { return nil }))
}

func TestSurfaces_SharesSurfaceWhileInFlight(t *testing.T) {
	var r Surfaces
	started := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- r.Do(context.Background(), "popup-1", func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		})
	}()
	<-started
	assert.Equal(t, 1, r.Len())

	// 其它界面互不影响
	require.NoError(t, r.Do(context.Background(), "popup-2", func(ctx context.Context) error { return nil }))
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Do(context.Background(), "popup-1", func(ctx context.Context) error { return nil }))

	select {
	case err := <-firstDone:
		assert.True(t, errors.Is(err, ErrSuperseded))
	case <-time.After(2 * time.Second):
		t.Fatal("first request was not cancelled")
	}
	assert.Equal(t, 0, r.Len())
}

func TestSurfaces_EmptyAfterRequestsComplete(t *testing.T) {
	var r Surfaces
	for i := 0; i < 10000; i++ {
		err := r.Do(context.Background(), fmt.Sprintf("popup-%d", i), func(ctx context.Context) error { return nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 0, r.Len())

	want := errors.New("boom")
	assert.Same(t, want, r.Do(context.Background(), "popup-x", func(ctx context.Context) error { return want }))
	assert.Equal(t, 0, r.Len())
}
