package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

func TestFollowRepo_CreateIdempotent(t *testing.T) {
	r := newFollowRepo(time.Now)
	ctx := context.Background()

	created, err := r.Create(ctx, "alice", "bob")
	if err != nil || !created {
		t.Fatalf("first create = (%v, %v), want (true, nil)", created, err)
	}
	created, err = r.Create(ctx, "alice", "bob")
	if err != nil || created {
		t.Fatalf("second create = (%v, %v), want (false, nil)", created, err)
	}

	following, _ := r.ListFollowing(ctx, "alice")
	if len(following) != 1 {
		t.Fatalf("stored edges = %d, want exactly 1", len(following))
	}
}

func TestFollowRepo_SelfEdgeForbidden(t *testing.T) {
	r := newFollowRepo(time.Now)
	if _, err := r.Create(context.Background(), "alice", "alice"); !errors.Is(err, repository.ErrSelfReference) {
		t.Fatalf("err = %v, want ErrSelfReference", err)
	}
}

func TestFollowRepo_DeleteAbsentIsNoop(t *testing.T) {
	r := newFollowRepo(time.Now)
	ctx := context.Background()

	removed, err := r.Delete(ctx, "alice", "bob")
	if err != nil || removed {
		t.Fatalf("delete absent = (%v, %v), want (false, nil)", removed, err)
	}

	r.Create(ctx, "alice", "bob")
	removed, err = r.Delete(ctx, "alice", "bob")
	if err != nil || !removed {
		t.Fatalf("delete present = (%v, %v), want (true, nil)", removed, err)
	}
	if ok, _ := r.Exists(ctx, "alice", "bob"); ok {
		t.Fatal("edge still present after delete")
	}
}

func TestFollowRepo_DirectedLookup(t *testing.T) {
	r := newFollowRepo(time.Now)
	ctx := context.Background()
	r.Create(ctx, "alice", "bob")

	if ok, _ := r.Exists(ctx, "alice", "bob"); !ok {
		t.Error("alice → bob should exist")
	}
	// A → B no implica B → A
	if ok, _ := r.Exists(ctx, "bob", "alice"); ok {
		t.Error("bob → alice should not exist")
	}
}

func TestFollowRepo_ListInsertionOrder(t *testing.T) {
	r := newFollowRepo(time.Now)
	ctx := context.Background()
	r.Create(ctx, "bob", "alice")
	r.Create(ctx, "carol", "alice")
	r.Create(ctx, "dave", "alice")

	followers, _ := r.ListFollowers(ctx, "alice")
	want := []string{"bob", "carol", "dave"}
	if len(followers) != len(want) {
		t.Fatalf("followers = %v, want %v", followers, want)
	}
	for i := range want {
		if followers[i] != want[i] {
			t.Fatalf("followers = %v, want %v", followers, want)
		}
	}
}

func TestFollowRepo_ConcurrentCreateSingleEdge(t *testing.T) {
	r := newFollowRepo(time.Now)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := r.Create(ctx, "alice", "bob")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if createdCount != 1 {
		t.Fatalf("createdCount = %d, want 1", createdCount)
	}
	following, _ := r.ListFollowing(ctx, "alice")
	if len(following) != 1 {
		t.Fatalf("edges = %d, want 1", len(following))
	}
}
