// Package writequeue 提供按写入通道串行化数据库写操作的队列
// Package writequeue serializes database writes by named lane.
// 同一通道的写操作按 FIFO 顺序执行，避免 SQLite 并发写触发 "database is locked"
// Writes on the same lane run FIFO, which keeps concurrent SQLite
// writers from hitting "database is locked".
package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull 写入通道已满
	ErrQueueFull = errors.New("write queue is full")
	// ErrQueueClosed 写队列管理器已关闭
	ErrQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 写操作等待超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	// QueueCapacity 每个通道的排队容量，默认 100
	QueueCapacity int
	// WriteTimeout 单次写操作的等待超时，默认 30 秒
	WriteTimeout time.Duration
	// IdleTimeout 空闲通道回收时间，默认 10 分钟
	IdleTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = d.QueueCapacity
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	return c
}

// writeOp 单个待执行的写操作
type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

// laneQueue 单个写入通道
// 每个通道由一个 worker 按提交顺序执行写操作
type laneQueue struct {
	name     string
	ops      chan writeOp
	lastUsed atomic.Int64
	closed   atomic.Bool
	wg       sync.WaitGroup

	// 通知 worker 退出
	stopCh chan struct{}
}

func (q *laneQueue) touch() {
	q.lastUsed.Store(time.Now().UnixNano())
}

// Manager 管理全部写入通道
// 通道按名字懒创建，空闲超时后回收
type Manager struct {
	config Config
	logger *zap.Logger

	lanes sync.Map // map[string]*laneQueue

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	cleanupWg   sync.WaitGroup
	cleanupDone chan struct{}
}

// New 创建写队列管理器并启动空闲通道回收协程
// cfg 为 nil 时使用默认配置，logger 为 nil 时丢弃日志
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		c = cfg.withDefaults()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		config:      c,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}

	m.cleanupWg.Add(1)
	go m.cleanupLoop()

	m.logger.Info("write queue started",
		zap.Int("queueCapacity", c.QueueCapacity),
		zap.Duration("writeTimeout", c.WriteTimeout),
		zap.Duration("idleTimeout", c.IdleTimeout))

	return m
}

// Execute 在指定写入通道上执行写操作并等待结果
// Execute runs fn on the named lane and waits for the result.
// 同一通道的写操作按 FIFO 串行执行，不同通道互不阻塞
func (m *Manager) Execute(ctx context.Context, lane string, fn func() error) error {
	q := m.lane(lane)
	if q == nil {
		return ErrQueueClosed
	}

	op := writeOp{
		ctx:    ctx,
		fn:     fn,
		result: make(chan error, 1),
	}

	select {
	case q.ops <- op:
	default:
		return ErrQueueFull
	}

	// 等待超时取 WriteTimeout 与 ctx 剩余时间的较小值
	timeout := m.config.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	case <-m.ctx.Done():
		return ErrQueueClosed
	}
}

// lane 返回指定名字的通道，不存在时懒创建
// 管理器已关闭时返回 nil
func (m *Manager) lane(name string) *laneQueue {
	if v, ok := m.lanes.Load(name); ok {
		q := v.(*laneQueue)
		if !q.closed.Load() {
			q.touch()
			return q
		}
	}

	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil
	}

	q := &laneQueue{
		name:   name,
		ops:    make(chan writeOp, m.config.QueueCapacity),
		stopCh: make(chan struct{}),
	}
	q.touch()

	actual, loaded := m.lanes.LoadOrStore(name, q)
	if loaded {
		existing := actual.(*laneQueue)
		if !existing.closed.Load() {
			// 并发创建时沿用已有通道
			close(q.stopCh)
			existing.touch()
			return existing
		}
		// 旧通道已被空闲回收，换上新通道
		m.lanes.Store(name, q)
	}

	q.wg.Add(1)
	go m.worker(q)

	m.logger.Debug("write lane created",
		zap.String("lane", name),
		zap.Int("capacity", m.config.QueueCapacity))

	return q
}

func (m *Manager) worker(q *laneQueue) {
	defer q.wg.Done()
	defer func() {
		q.closed.Store(true)
		m.logger.Debug("write lane worker stopped", zap.String("lane", q.name))
	}()

	for {
		select {
		case <-m.ctx.Done():
			m.drain(q)
			return
		case <-q.stopCh:
			m.drain(q)
			return
		case op := <-q.ops:
			m.apply(q, op)
		}
	}
}

// apply 执行单个写操作并回传结果
func (m *Manager) apply(q *laneQueue, op writeOp) {
	q.touch()

	if err := op.ctx.Err(); err != nil {
		op.result <- err
		return
	}
	// result 带一格缓冲，单次发送不会阻塞
	op.result <- op.fn()
}

// drain 排空通道中剩余的写操作
func (m *Manager) drain(q *laneQueue) {
	for {
		select {
		case op := <-q.ops:
			m.apply(q, op)
		default:
			return
		}
	}
}

func (m *Manager) cleanupLoop() {
	defer m.cleanupWg.Done()

	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.cleanupDone:
			return
		case <-ticker.C:
			m.reapIdleLanes()
		}
	}
}

// reapIdleLanes 回收空闲超时且无积压的通道
func (m *Manager) reapIdleLanes() {
	now := time.Now().UnixNano()
	idle := m.config.IdleTimeout.Nanoseconds()

	m.lanes.Range(func(key, value interface{}) bool {
		q := value.(*laneQueue)

		if now-q.lastUsed.Load() <= idle {
			return true
		}
		if len(q.ops) != 0 {
			return true
		}
		// Swap 保证 stopCh 只被关闭一次
		if q.closed.Swap(true) {
			return true
		}

		m.logger.Debug("reaping idle write lane",
			zap.String("lane", q.name),
			zap.Duration("idleTime", time.Duration(now-q.lastUsed.Load())))

		close(q.stopCh)
		m.lanes.Delete(key)
		return true
	})
}

// Shutdown 关闭写队列管理器，等待存量写操作执行完
// ctx 超时后放弃等待并强制取消
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("write queue shutting down")

	close(m.cleanupDone)

	done := make(chan struct{})
	go func() {
		// 先通知全部通道退出，再逐个等待 worker 结束
		m.lanes.Range(func(_, value interface{}) bool {
			q := value.(*laneQueue)
			if !q.closed.Swap(true) {
				close(q.stopCh)
			}
			return true
		})
		m.lanes.Range(func(_, value interface{}) bool {
			value.(*laneQueue).wg.Wait()
			return true
		})
		m.cleanupWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.cancel()
		m.logger.Info("write queue shutdown completed")
		return nil
	case <-ctx.Done():
		m.cancel()
		m.logger.Warn("write queue shutdown timeout, forcing cancellation")
		return ctx.Err()
	}
}

// Metrics 写队列运行指标
type Metrics struct {
	QueueCapacity int
	ActiveLanes   int
	Closed        bool
}

// GetMetrics 返回当前指标快照
func (m *Manager) GetMetrics() Metrics {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()

	active := 0
	m.lanes.Range(func(_, value interface{}) bool {
		if !value.(*laneQueue).closed.Load() {
			active++
		}
		return true
	})

	return Metrics{
		QueueCapacity: m.config.QueueCapacity,
		ActiveLanes:   active,
		Closed:        closed,
	}
}
