package uci

import (
	"context"
	"fmt"
	"sync"
)

// Pool keeps warm engine sessions grouped by option set so repeated
// evaluations skip the process startup and handshake cost.
type Pool struct {
	binaryPath string
	capacity   int

	mu      sync.Mutex
	buckets map[string]*bucket
	closed  bool
}

type bucket struct {
	idle chan *Session
}

type PoolConfig struct {
	BinaryPath string
	// Capacity bounds the number of idle sessions kept per option set.
	Capacity int
}

func NewPool(cfg PoolConfig) (*Pool, error) {
	if cfg.BinaryPath == "" {
		return nil, fmt.Errorf("binary path is required")
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1
	}
	return &Pool{
		binaryPath: cfg.BinaryPath,
		capacity:   capacity,
		buckets:    make(map[string]*bucket),
	}, nil
}

func (p *Pool) Acquire(ctx context.Context, opt Options) (*Session, error) {
	b := p.bucketFor(opt)
	if b == nil {
		return nil, fmt.Errorf("pool is closed")
	}

	select {
	case s := <-b.idle:
		if err := s.EnsureReady(ctx); err != nil {
			s.Close()
			return p.newSession(ctx, opt)
		}
		return s, nil
	default:
		return p.newSession(ctx, opt)
	}
}

// Release returns a healthy session to its bucket, or closes it when the
// bucket is full or the pool has shut down.
func (p *Pool) Release(s *Session, opt Options) {
	if s == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		s.Close()
		return
	}
	b := p.buckets[optionsKey(opt)]
	p.mu.Unlock()

	if b == nil {
		s.Close()
		return
	}

	select {
	case b.idle <- s:
	default:
		s.Close()
	}
}

func (p *Pool) Discard(s *Session) {
	if s != nil {
		s.Close()
	}
}

func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	buckets := p.buckets
	p.buckets = nil
	p.mu.Unlock()

	for _, b := range buckets {
		close(b.idle)
		for s := range b.idle {
			s.Close()
		}
	}
}

func (p *Pool) bucketFor(opt Options) *bucket {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	key := optionsKey(opt)
	b, ok := p.buckets[key]
	if !ok {
		b = &bucket{idle: make(chan *Session, p.capacity)}
		p.buckets[key] = b
	}
	return b
}

func (p *Pool) newSession(ctx context.Context, opt Options) (*Session, error) {
	s, err := NewSession(ctx, p.binaryPath, opt)
	if err != nil {
		return nil, fmt.Errorf("spawn engine session: %w", err)
	}
	return s, nil
}

func optionsKey(opt Options) string {
	return fmt.Sprintf("t%d-h%d-pv%d", opt.Threads, opt.HashMB, opt.MultiPV)
}
