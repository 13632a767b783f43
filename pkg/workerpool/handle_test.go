package workerpool_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapkoval/conckit/pkg/workerpool"
)

func TestHandle_Await(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	h, err := p.Submit(func(context.Context) error {
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	assert.NoError(t, h.Await())
	assert.True(t, h.IsComplete())
	assert.NotEqual(t, uuid.Nil, h.ID(), "handle must carry an identifier")
}

func TestHandle_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	block := make(chan struct{})
	h, err := p.Submit(func(context.Context) error {
		<-block
		return nil
	})
	require.NoError(t, err)

	err = h.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, workerpool.ErrAwaitTimeout)
	assert.False(t, h.IsComplete())

	close(block)
	assert.NoError(t, h.AwaitWithTimeout(time.Second))
}

func TestHandle_CancelBeforeStart(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	// Occupy the only worker so the next submission stays queued.
	block := make(chan struct{})
	defer close(block)
	started := make(chan struct{})
	_, err := p.Submit(func(context.Context) error {
		close(started)
		<-block
		return nil
	})
	require.NoError(t, err)
	<-started

	ran := false
	h, err := p.Submit(func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, h.Cancel())
	assert.True(t, h.Canceled())
	assert.ErrorIs(t, h.Await(), workerpool.ErrTaskCanceled)
	assert.False(t, ran, "a task canceled before start must never execute")
}

func TestHandle_CancelRunningTaskIsCooperative(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	started := make(chan struct{})
	h, err := p.Submit(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, err)
	<-started

	assert.True(t, h.Cancel(), "cancel must deliver an interrupt to a running task")
	assert.ErrorIs(t, h.Await(), context.Canceled)
	assert.False(t, h.Canceled(), "a task that ran to completion is not pre-start canceled")
}

func TestHandle_CancelAfterCompletion(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	h, err := p.Submit(func(context.Context) error { return nil })
	require.NoError(t, err)
	require.NoError(t, h.Await())

	assert.False(t, h.Cancel(), "cancel after completion must report no signal delivered")
	assert.NoError(t, h.Err())
}

func TestHandle_ErrNilUntilComplete(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, 4)

	block := make(chan struct{})
	h, err := p.Submit(func(context.Context) error {
		<-block
		return nil
	})
	require.NoError(t, err)

	assert.NoError(t, h.Err())
	close(block)
	require.NoError(t, h.Await())
}
