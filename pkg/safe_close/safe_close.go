// Package safe_close 提供多组件协同关闭的工具
// 组件通过 Attach 注册自身的关闭逻辑，任意组件可以广播关闭信号，
// WaitClosed 会等待所有组件完成清理后返回首个错误。
package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台组件的安全关闭
type SafeClose struct {
	mu          sync.Mutex
	closeOnce   sync.Once
	closeSignal chan struct{}
	wg          sync.WaitGroup
	err         error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a component goroutine.
// f receives a done callback and the shared close signal. The component
// must call done exactly once after its cleanup finishes. f runs in its
// own goroutine.
//
// Attach 注册一个组件协程。
// f 接收 done 回调与共享的关闭信号，组件清理完成后必须调用 done。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal. Only the first call takes
// effect; its error (may be nil) becomes the result of WaitClosed.
//
// SendCloseSignal 广播关闭信号，仅首次调用生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// WaitClosed blocks until every attached component has called done, then
// returns the error carried by the close signal.
//
// WaitClosed 阻塞直到所有组件关闭完成，返回关闭原因
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
