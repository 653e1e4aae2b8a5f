package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdda-go/constraints/internal/parallel"
)

func TestPool_RunExecutesEveryIndex(t *testing.T) {
	p := parallel.New(4)
	defer p.Close()

	var count int64
	err := parallel.Run(context.Background(), p, 50, func(ctx context.Context, i int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), count)
}

func TestPool_RunPropagatesFirstError(t *testing.T) {
	p := parallel.New(2)
	defer p.Close()

	boom := errors.New("boom")
	err := parallel.Run(context.Background(), p, 10, func(ctx context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestPool_SubmitRespectsCancellation(t *testing.T) {
	p := parallel.New(1)
	defer p.Close()

	// Saturate the single worker so the next Submit must wait on ctx.
	block := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(block)
}

func TestPool_SubmitAfterCloseFails(t *testing.T) {
	p := parallel.New(2)
	p.Close()

	err := p.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, parallel.ErrPoolClosed)
}
