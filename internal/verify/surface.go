package verify

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded 请求已被同一界面上更新的请求取代，结果应丢弃
var ErrSuperseded = errors.New("request superseded by a newer one")

// Surface 每个界面同一时刻只保留一个活动请求，新请求会取消进行中的旧请求
type Surface struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Do 以界面唯一活动请求的身份执行 fn
func (s *Surface) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	err := fn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		cancel()
		return ErrSuperseded
	}
	cancel()
	s.cancel = nil
	return err
}

type surfaceEntry struct {
	surface *Surface
	refs    int
}

// Surfaces 按界面 ID 管理 Surface，条目在其所有请求结束后移除
type Surfaces struct {
	mu sync.Mutex
	m  map[string]*surfaceEntry
}

// Do 在 id 对应的界面上执行 fn
func (r *Surfaces) Do(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	s := r.acquire(id)
	defer r.release(id)
	return s.Do(ctx, fn)
}

// Len 返回仍有请求在执行的界面数量
func (r *Surfaces) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

func (r *Surfaces) acquire(id string) *Surface {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[string]*surfaceEntry)
	}
	e, ok := r.m[id]
	if !ok {
		e = &surfaceEntry{surface: &Surface{}}
		r.m[id] = e
	}
	e.refs++
	return e.surface
}

func (r *Surfaces) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(r.m, id)
	}
}
