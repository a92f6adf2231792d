package service

import (
	"context"
	"testing"
)

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := l.TryLock(ctx, "k"); ok {
		t.Fatal("second lock on same key succeeded")
	}
	if _, ok, _ := l.TryLock(ctx, "other"); !ok {
		t.Fatal("independent key blocked")
	}
	unlock()
	unlock() // idempotent
	if _, ok, _ := l.TryLock(ctx, "k"); !ok {
		t.Fatal("lock not released")
	}
}
