package lock

import (
	"context"
	"fmt"
	"sync"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// LocalLocker é um mutex por chave, válido apenas dentro do processo.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: map[string]*slot{}}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, s)
		return nil, fmt.Errorf("%w: %v", ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.drop(key, s)
		})
	}, nil
}

func (l *LocalLocker) drop(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Len devolve quantas chaves estão em uso.
func (l *LocalLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

var _ Locker = (*LocalLocker)(nil)
