package purge

import (
	"context"
	"errors"
	"testing"
)

type wiperSpy struct {
	called bool
	err    error
}

func (w *wiperSpy) DeleteAll(context.Context) error {
	w.called = true
	return w.err
}

func TestWipeCallsEveryWiper(t *testing.T) {
	a, b := &wiperSpy{}, &wiperSpy{}
	svc := NewService(map[string]Wiper{"usuarios": a, "totens": b}, nil)

	if err := svc.Wipe(context.Background()); err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	if !a.called || !b.called {
		t.Errorf("called = %v/%v, want both wipers invoked", a.called, b.called)
	}
}

func TestWipeReportsFailure(t *testing.T) {
	wantErr := errors.New("connection lost")
	svc := NewService(map[string]Wiper{"usuarios": &wiperSpy{err: wantErr}}, nil)

	err := svc.Wipe(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("Wipe() error = %v, want wrapped %v", err, wantErr)
	}
}
