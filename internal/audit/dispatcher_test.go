package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (f *fakeRecorder) Record(ctx context.Context, ev Event) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeRecorder) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestDispatcher_DeliversAndDrains(t *testing.T) {
	rec := &fakeRecorder{}
	d := NewDispatcher(rec, 10, nil)

	ctx := WithClient(context.Background(), "10.0.0.1", "curl/8")
	for i := 0; i < 3; i++ {
		d.Dispatch(ctx, Event{UserID: 1, Action: "agendamento_criado"})
	}
	d.Close()

	if rec.len() != 3 {
		t.Fatalf("expected 3 events, got %d", rec.len())
	}
	if rec.events[0].IPAddress != "10.0.0.1" || rec.events[0].UserAgent != "curl/8" {
		t.Fatalf("request metadata not copied: %+v", rec.events[0])
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	rec := &fakeRecorder{block: make(chan struct{})}
	d := NewDispatcher(rec, 1, nil)

	// um evento preso no worker, um na fila, o resto é descartado
	for i := 0; i < 10; i++ {
		d.Dispatch(context.Background(), Event{Action: "x"})
	}
	close(rec.block)
	d.Close()

	if n := rec.len(); n < 1 || n > 2 {
		t.Fatalf("expected overflow to be dropped, recorded %d", n)
	}
}

func TestDispatcher_RecorderErrorDoesNotStopWorker(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("db down")}
	d := NewDispatcher(rec, 10, nil)

	d.Dispatch(context.Background(), Event{Action: "a"})
	d.Dispatch(context.Background(), Event{Action: "b"})
	d.Close()

	if rec.len() != 2 {
		t.Fatalf("expected 2 attempts, got %d", rec.len())
	}
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	rec := &fakeRecorder{}
	d := NewDispatcher(rec, 10, nil)

	d.Dispatch(context.Background(), Event{Action: "antes"})
	d.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("dispatch after close panicked: %v", r)
		}
	}()
	d.Dispatch(context.Background(), Event{Action: "depois"})
	d.Close()

	if rec.len() != 1 || rec.events[0].Action != "antes" {
		t.Fatalf("expected only the event sent before close, got %+v", rec.events)
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(context.Background(), Event{Action: "x"})
	d.Close()
}

func TestToActivityLog(t *testing.T) {
	id := uint(7)
	row := ToActivityLog(Event{
		UserID:   3,
		Action:   "status_alterado",
		Table:    "agendamentos",
		RecordID: &id,
		Before:   map[string]string{"status": "agendado"},
		After:    map[string]string{"status": "confirmado"},
	})

	if string(row.Before) != `{"status":"agendado"}` || string(row.After) != `{"status":"confirmado"}` {
		t.Fatalf("unexpected snapshots: %s / %s", row.Before, row.After)
	}
	if row.RecordID == nil || *row.RecordID != 7 || row.Table != "agendamentos" {
		t.Fatalf("unexpected row: %+v", row)
	}

	empty := ToActivityLog(Event{Action: "x"})
	if empty.Before != nil || empty.After != nil {
		t.Fatalf("nil snapshots expected")
	}
}
