package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired: o prazo acabou antes de conseguir a trava.
var ErrNotAcquired = errors.New("slot lock not acquired")

// Locker serializa escritas na agenda de um funcionário em um dia.
// A função devolvida libera a trava e pode ser chamada mais de uma vez.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
