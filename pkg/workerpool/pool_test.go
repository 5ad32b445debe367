package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, cfg Config) *Pool {
	t.Helper()
	p := New(&cfg, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	})
	return p
}

func TestSubmitReturnsJobResult(t *testing.T) {
	p := newTestPool(t, Config{MaxWorkers: 2, QueueSize: 4})

	err := p.Submit(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	wantErr := errors.New("job failed")
	err = p.Submit(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestSubmitAsyncExecutes(t *testing.T) {
	p := newTestPool(t, Config{MaxWorkers: 1, QueueSize: 4})

	ran := make(chan struct{})
	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(ran)
		return nil
	})
	require.NoError(t, err)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("async job did not run")
	}
}

func TestSubmitFullQueue(t *testing.T) {
	p := newTestPool(t, Config{MaxWorkers: 1, QueueSize: 1})

	block := make(chan struct{})
	started := make(chan struct{})

	// 占住唯一的 worker
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(started)
		<-block
		return nil
	}))
	<-started

	// 填满等待队列
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		return nil
	}))

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrPoolFull)

	close(block)
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	err := p.Submit(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrPoolClosed)

	err = p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestShutdownWaitsForRunningJobs(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)

	var finished atomic.Bool
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(started)
		<-release
		finished.Store(true)
		return nil
	}))
	<-started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
	assert.True(t, finished.Load())
}

func TestShutdownTimeout(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)

	block := make(chan struct{})
	started := make(chan struct{})
	defer close(block)

	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(started)
		<-block
		return nil
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := p.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestJobPanicRecovered(t *testing.T) {
	p := newTestPool(t, Config{MaxWorkers: 1, QueueSize: 4})

	err := p.Submit(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job panic")

	// worker 存活，后续任务正常执行
	err = p.Submit(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestConfigDefaults(t *testing.T) {
	p := newTestPool(t, Config{MaxWorkers: -1, QueueSize: 0, WarningPercent: 1.5})

	stats := p.GetMetrics()
	assert.Equal(t, 100, stats.MaxWorkers)
	assert.Equal(t, 1000, stats.QueueCapacity)
	assert.False(t, stats.Closed)
}
