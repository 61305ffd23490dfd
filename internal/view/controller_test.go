package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(items ...int) Fetcher[int] {
	return func(ctx context.Context) ([]int, error) { return items, nil }
}

func even(n int) bool { return n%2 == 0 }

func TestControllerAppliesScopeAndFilters(t *testing.T) {
	ctrl := NewController[int](even)
	require.NoError(t, ctrl.Load(context.Background(), ints(1, 2, 3, 4, 6, 8)))

	assert.Equal(t, []int{2, 4, 6, 8}, ctrl.Items())

	ctrl.SetFilters(func(n int) bool { return n > 3 })
	assert.Equal(t, []int{4, 6, 8}, ctrl.Items())

	ctrl.ClearFilters()
	assert.Equal(t, ctrl.Scoped(), ctrl.Items())
}

func TestControllerHidesListWhileLoading(t *testing.T) {
	ctrl := NewController[int](nil)
	require.NoError(t, ctrl.Load(context.Background(), ints(1, 2)))

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- ctrl.Refetch(context.Background(), func(ctx context.Context) ([]int, error) {
			close(started)
			<-release
			return []int{3}, nil
		})
	}()

	<-started
	assert.True(t, ctrl.Loading())
	assert.Nil(t, ctrl.Items())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, ctrl.Loading())
	assert.Equal(t, []int{3}, ctrl.Items())
}

func TestControllerDiscardsResultAfterUnmount(t *testing.T) {
	ctrl := NewController[int](nil)
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- ctrl.Load(context.Background(), func(ctx context.Context) ([]int, error) {
			close(started)
			<-release
			return []int{42}, nil
		})
	}()

	<-started
	ctrl.Unmount()
	close(release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Empty(t, ctrl.Items())
	assert.ErrorIs(t, ctrl.Load(context.Background(), ints(1)), ErrStale)
}

func TestControllerDiscardsOlderLoad(t *testing.T) {
	ctrl := NewController[int](nil)
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- ctrl.Load(context.Background(), func(ctx context.Context) ([]int, error) {
			close(started)
			<-release
			return []int{1}, nil
		})
	}()

	<-started
	require.NoError(t, ctrl.Load(context.Background(), ints(2)))
	close(release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, []int{2}, ctrl.Items())
}

func TestControllerKeepsListOnFetchError(t *testing.T) {
	var notified error
	ctrl := NewController[int](nil, WithNotifier[int](func(err error) { notified = err }))
	require.NoError(t, ctrl.Load(context.Background(), ints(1, 2)))

	boom := errors.New("network down")
	err := ctrl.Load(context.Background(), func(ctx context.Context) ([]int, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, notified, boom)
	assert.ErrorIs(t, ctrl.Err(), boom)
	assert.Equal(t, []int{1, 2}, ctrl.Items())

	require.NoError(t, ctrl.Load(context.Background(), ints(5)))
	assert.NoError(t, ctrl.Err())
}

func TestControllerFilterOrderDoesNotMatter(t *testing.T) {
	gt := func(n int) bool { return n > 2 }
	lt := func(n int) bool { return n < 8 }

	a := NewController[int](even)
	b := NewController[int](even)
	require.NoError(t, a.Load(context.Background(), ints(1, 2, 3, 4, 6, 8)))
	require.NoError(t, b.Load(context.Background(), ints(1, 2, 3, 4, 6, 8)))
	a.SetFilters(gt, lt)
	b.SetFilters(lt, gt)

	assert.Equal(t, a.Items(), b.Items())
	assert.Equal(t, []int{4, 6}, a.Items())
}
