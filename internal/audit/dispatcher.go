package audit

import (
	"context"
	"log/slog"
	"sync"
)

type Event struct {
	UserID   uint
	Action   string
	Table    string
	RecordID *uint
	Before   any
	After    any

	IPAddress string
	UserAgent string
}

// Recorder persiste um evento de auditoria.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
	logger   *slog.Logger

	// mu protege closed; envio e fechamento da fila nunca se cruzam
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(recorder Recorder, size int, logger *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, size),
		logger:   logger,
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.recorder.Record(context.Background(), ev); err != nil {
			d.logger.Error("audit error",
				"action", ev.Action,
				"table", ev.Table,
				"err", err,
			)
		}
	}
}

// Dispatch nunca bloqueia a requisição. Um Dispatcher nil ignora o evento.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if d == nil {
		return
	}

	if ev.IPAddress == "" && ev.UserAgent == "" {
		ev.IPAddress, ev.UserAgent = ClientFrom(ctx)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close esvazia a fila e espera o worker terminar. Eventos despachados
// depois disso são descartados.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

// -------- Request metadata --------

type clientKey struct{}

type client struct {
	ip        string
	userAgent string
}

// WithClient anexa IP e user agent da requisição ao contexto.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey{}, client{ip: ip, userAgent: userAgent})
}

func ClientFrom(ctx context.Context) (ip, userAgent string) {
	if ctx == nil {
		return "", ""
	}
	c, _ := ctx.Value(clientKey{}).(client)
	return c.ip, c.userAgent
}
