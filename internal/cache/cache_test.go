package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryGetDel_ConsumesOnce(t *testing.T) {
	m := NewMemory("test", time.Minute)
	ctx := context.Background()

	if err := m.Set(ctx, "token", "abc", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, err := m.GetDel(ctx, "token")
	if err != nil {
		t.Fatalf("GetDel: %v", err)
	}
	if v != "abc" {
		t.Fatalf("value = %q, want %q", v, "abc")
	}
	if _, err := m.GetDel(ctx, "token"); !IsNotFound(err) {
		t.Fatalf("second GetDel: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryGetDel_Missing(t *testing.T) {
	m := NewMemory("test", time.Minute)

	if _, err := m.GetDel(context.Background(), "nope"); !IsNotFound(err) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// Con N consumidores concurrentes exactamente uno recibe el valor.
func TestMemoryGetDel_SingleWinner(t *testing.T) {
	m := NewMemory("test", time.Minute)
	ctx := context.Background()

	if err := m.Set(ctx, "token", "abc", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	const workers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.GetDel(ctx, "token"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("wins = %d, want 1", wins)
	}
}
