// Package workerpool 提供带上限的后台任务池
// 归档上传、邮件投递等异步任务统一经过任务池执行，限制并发 goroutine 数量
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrPoolFull 任务队列已满
	ErrPoolFull = errors.New("worker pool queue is full")
	// ErrPoolClosed 任务池已关闭
	ErrPoolClosed = errors.New("worker pool is closed")
	// ErrJobCancelled 任务在执行前已被取消
	ErrJobCancelled = errors.New("job was cancelled")
)

// Config 任务池配置
type Config struct {
	// MaxWorkers 并发 worker 上限，默认 100
	MaxWorkers int
	// QueueSize 等待队列容量，默认 1000
	QueueSize int
	// WarningPercent 活跃度告警阈值，默认 0.8
	WarningPercent float64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     100,
		QueueSize:      1000,
		WarningPercent: 0.8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = d.MaxWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.WarningPercent <= 0 || c.WarningPercent > 1 {
		c.WarningPercent = d.WarningPercent
	}
	return c
}

// job 单个后台任务
// result 为 nil 表示异步提交，执行结果只记录日志
type job struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// Pool 固定 worker 数量的后台任务池
type Pool struct {
	config Config
	logger *zap.Logger

	jobs    chan job
	wg      sync.WaitGroup
	running atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New 创建任务池并启动全部 worker
// cfg 为 nil 时使用默认配置，logger 为 nil 时丢弃日志
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		c = cfg.withDefaults()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		config: c,
		logger: logger,
		jobs:   make(chan job, c.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < c.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", c.MaxWorkers),
		zap.Int("queueSize", c.QueueSize))

	return p
}

// Submit 提交任务并等待执行结果
// 队列已满立即返回 ErrPoolFull，不阻塞调用方
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	j, err := p.enqueue(ctx, fn, true)
	if err != nil {
		return err
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// SubmitAsync 提交任务后立即返回，失败只记录日志
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) error {
	_, err := p.enqueue(ctx, fn, false)
	return err
}

// enqueue 非阻塞入队
// 入队全程持有读锁，保证不会向已关闭的通道发送
func (p *Pool) enqueue(ctx context.Context, fn func(context.Context) error, wait bool) (job, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return job{}, ErrPoolClosed
	}

	j := job{ctx: ctx, fn: fn}
	if wait {
		j.result = make(chan error, 1)
	}

	select {
	case p.jobs <- j:
		return j, nil
	default:
		return job{}, ErrPoolFull
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for j := range p.jobs {
		if p.ctx.Err() != nil {
			// 关闭已超时，剩余任务直接判失败
			p.finish(j, ErrPoolClosed)
			continue
		}
		p.run(j)
	}
}

func (p *Pool) run(j job) {
	p.running.Add(1)
	defer p.running.Add(-1)

	p.warnIfNearCapacity()

	var err error
	if j.ctx.Err() != nil {
		err = ErrJobCancelled
	} else {
		err = p.invoke(j)
	}
	p.finish(j, err)
}

// invoke 执行任务并拦截 panic，单个任务崩溃不影响 worker
func (p *Pool) invoke(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panic: %v", r)
			p.logger.Error("worker pool job panicked", zap.Any("panic", r))
		}
	}()
	return j.fn(j.ctx)
}

func (p *Pool) finish(j job, err error) {
	if j.result == nil {
		if err != nil && !errors.Is(err, ErrJobCancelled) {
			p.logger.Warn("async job failed", zap.Error(err))
		}
		return
	}
	// result 带一格缓冲，单次发送不会阻塞
	j.result <- err
}

// warnIfNearCapacity 活跃任务数达到阈值时输出告警
func (p *Pool) warnIfNearCapacity() {
	active := p.running.Load()
	threshold := int64(float64(p.config.MaxWorkers) * p.config.WarningPercent)

	if active >= threshold {
		p.logger.Warn("worker pool approaching capacity",
			zap.Int64("running", active),
			zap.Int("maxWorkers", p.config.MaxWorkers))
	}
}

// Shutdown 停止接收新任务并等待存量任务执行完
// ctx 超时后放弃等待，剩余任务以 ErrPoolClosed 失败
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.logger.Info("worker pool shutting down",
		zap.Int64("running", p.running.Load()),
		zap.Int("queued", len(p.jobs)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("worker pool shutdown timeout, forcing cancellation")
		return ctx.Err()
	}
}

// Metrics 任务池运行指标
type Metrics struct {
	MaxWorkers    int
	Running       int64
	Queued        int
	QueueCapacity int
	Closed        bool
}

// GetMetrics 返回当前指标快照
func (p *Pool) GetMetrics() Metrics {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()

	return Metrics{
		MaxWorkers:    p.config.MaxWorkers,
		Running:       p.running.Load(),
		Queued:        len(p.jobs),
		QueueCapacity: p.config.QueueSize,
		Closed:        closed,
	}
}
