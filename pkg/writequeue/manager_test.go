package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	m := New(&cfg, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	})
	return m
}

func TestExecuteReturnsResult(t *testing.T) {
	m := newTestManager(t, Config{})

	err := m.Execute(context.Background(), "history", func() error {
		return nil
	})
	require.NoError(t, err)

	wantErr := errors.New("write failed")
	err = m.Execute(context.Background(), "history", func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestExecuteSerializesSameLane(t *testing.T) {
	m := newTestManager(t, Config{})

	// 同一通道串行执行,无锁追加不会竞争
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = m.Execute(context.Background(), "history", func() error {
				order = append(order, n)
				return nil
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, order, 10)
}

func TestLanesRunIndependently(t *testing.T) {
	m := newTestManager(t, Config{})

	block := make(chan struct{})
	started := make(chan struct{})
	defer close(block)

	go func() {
		_ = m.Execute(context.Background(), "history", func() error {
			close(started)
			<-block
			return nil
		})
	}()
	<-started

	// history 通道被占住时其他通道不受影响
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := m.Execute(ctx, "config", func() error {
		return nil
	})
	assert.NoError(t, err)
}

func TestExecuteFullLane(t *testing.T) {
	m := newTestManager(t, Config{QueueCapacity: 1})

	block := make(chan struct{})
	started := make(chan struct{})
	results := make(chan error, 1)

	go func() {
		results <- m.Execute(context.Background(), "history", func() error {
			close(started)
			<-block
			return nil
		})
	}()
	<-started

	// 占满唯一的排队位
	go func() {
		_ = m.Execute(context.Background(), "history", func() error {
			return nil
		})
	}()

	// 等第二个操作进入队列
	require.Eventually(t, func() bool {
		if v, ok := m.lanes.Load("history"); ok {
			return len(v.(*laneQueue).ops) == 1
		}
		return false
	}, time.Second, 5*time.Millisecond)

	err := m.Execute(context.Background(), "history", func() error {
		return nil
	})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
	require.NoError(t, <-results)
}

func TestExecuteTimeout(t *testing.T) {
	m := newTestManager(t, Config{WriteTimeout: 50 * time.Millisecond})

	block := make(chan struct{})
	started := make(chan struct{})
	defer close(block)

	go func() {
		_ = m.Execute(context.Background(), "history", func() error {
			close(started)
			<-block
			return nil
		})
	}()
	<-started

	err := m.Execute(context.Background(), "history", func() error {
		return nil
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)
}

func TestExecuteAfterShutdown(t *testing.T) {
	m := New(&Config{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))

	err := m.Execute(context.Background(), "history", func() error {
		return nil
	})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestShutdownDrainsPendingWrites(t *testing.T) {
	m := New(&Config{}, nil)

	var applied atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = m.Execute(context.Background(), "history", func() error {
			close(started)
			<-release
			applied.Add(1)
			return nil
		})
	}()
	<-started

	go func() {
		_ = m.Execute(context.Background(), "history", func() error {
			applied.Add(1)
			return nil
		})
	}()

	// 等第二个操作进入队列
	require.Eventually(t, func() bool {
		if v, ok := m.lanes.Load("history"); ok {
			return len(v.(*laneQueue).ops) == 1
		}
		return false
	}, time.Second, 5*time.Millisecond)

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	// Shutdown 等待执行中的操作,并把排队中的操作排空后才返回
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))
	assert.Equal(t, int32(2), applied.Load())
}

func TestIdleLaneReaped(t *testing.T) {
	m := newTestManager(t, Config{IdleTimeout: 50 * time.Millisecond})

	require.NoError(t, m.Execute(context.Background(), "history", func() error {
		return nil
	}))
	assert.Equal(t, 1, m.GetMetrics().ActiveLanes)

	// 空闲超时后通道被回收
	require.Eventually(t, func() bool {
		return m.GetMetrics().ActiveLanes == 0
	}, time.Second, 10*time.Millisecond)

	// 再次写入时通道重建
	require.NoError(t, m.Execute(context.Background(), "history", func() error {
		return nil
	}))
	assert.Equal(t, 1, m.GetMetrics().ActiveLanes)
}
