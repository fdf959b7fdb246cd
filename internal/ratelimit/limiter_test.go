package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/lifeline/internal/cache"
)

func TestFixedWindow_AllowsUpToMax(t *testing.T) {
	l := New(cache.NewMemory("test", time.Minute), "rl", 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow %d: %v", i, err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d denied, want allowed", i)
		}
	}

	res, _ := l.Allow(ctx, "1.2.3.4")
	if res.Allowed {
		t.Fatal("hit over max allowed, want denied")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", res.RetryAfter)
	}
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	l := New(cache.NewMemory("test", time.Minute), "rl", 1, time.Hour)
	ctx := context.Background()

	l.Allow(ctx, "1.2.3.4")
	if res, _ := l.Allow(ctx, "1.2.3.4"); res.Allowed {
		t.Fatal("same key over max should be denied")
	}
	if res, _ := l.Allow(ctx, "5.6.7.8"); !res.Allowed {
		t.Fatal("different key should be allowed")
	}
}
