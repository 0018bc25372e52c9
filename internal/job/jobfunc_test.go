package job

import (
	"context"
	"errors"
	"testing"
)

func TestJobFunc_RunsClosure(t *testing.T) {
	ran := false
	j := New(func(context.Context) error {
		ran = true
		return nil
	})
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatal("closure did not run")
	}
}

func TestJobFunc_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	j := New(func(context.Context) error { return want })
	if err := j.Run(context.Background()); !errors.Is(err, want) {
		t.Fatalf("Run = %v, want %v", err, want)
	}
}

func TestJobFunc_NilIsError(t *testing.T) {
	j := New(nil)
	if err := j.Run(context.Background()); !errors.Is(err, ErrNilJobFunc) {
		t.Fatalf("Run = %v, want ErrNilJobFunc", err)
	}
}

func TestShardLabel_Stable(t *testing.T) {
	a := ShardLabel("expenses")
	if b := ShardLabel("expenses"); a != b {
		t.Fatalf("label not stable: %q vs %q", a, b)
	}
}
