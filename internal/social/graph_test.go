package social

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/dropDatabas3/lifeline/internal/store/memory"
)

func seedUsers(t *testing.T, st *memory.Store, names ...string) map[string]string {
	t.Helper()
	ids := make(map[string]string, len(names))
	for _, n := range names {
		u, err := st.Users().Create(context.Background(), repository.CreateUserInput{
			Username: n, Email: n + "@example.com", PasswordHash: "h",
		})
		if err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
		ids[n] = u.ID
	}
	return ids
}

func TestGraph_FollowIsDirected(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice", "bob")
	g := NewGraph(st.Users(), st.Follows())
	ctx := context.Background()

	created, err := g.Follow(ctx, ids["alice"], ids["bob"])
	if err != nil || !created {
		t.Fatalf("Follow = (%v, %v), want (true, nil)", created, err)
	}

	if ok, _ := g.IsFollowing(ctx, ids["alice"], ids["bob"]); !ok {
		t.Error("alice should follow bob")
	}
	if ok, _ := g.IsFollowing(ctx, ids["bob"], ids["alice"]); ok {
		t.Error("bob should not follow alice back")
	}
	// pero la conexión existe en ambos sentidos
	if ok, _ := g.AreConnected(ctx, ids["bob"], ids["alice"]); !ok {
		t.Error("connection should be direction-agnostic")
	}
}

func TestGraph_FollowUnknownTarget(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice")
	g := NewGraph(st.Users(), st.Follows())

	_, err := g.Follow(context.Background(), ids["alice"], "no-such-user")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGraph_FollowIdempotent(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice", "bob")
	g := NewGraph(st.Users(), st.Follows())
	ctx := context.Background()

	g.Follow(ctx, ids["alice"], ids["bob"])
	created, err := g.Follow(ctx, ids["alice"], ids["bob"])
	if err != nil {
		t.Fatalf("repeat Follow: %v", err)
	}
	if created {
		t.Error("repeat Follow reported created = true")
	}

	followers, _ := g.Followers(ctx, ids["bob"])
	if len(followers) != 1 {
		t.Fatalf("followers = %d, want 1", len(followers))
	}
}

func TestGraph_Toggle(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice", "bob")
	g := NewGraph(st.Users(), st.Follows())
	ctx := context.Background()

	on, err := g.Toggle(ctx, ids["alice"], ids["bob"])
	if err != nil || !on {
		t.Fatalf("first Toggle = (%v, %v), want (true, nil)", on, err)
	}
	off, err := g.Toggle(ctx, ids["alice"], ids["bob"])
	if err != nil || off {
		t.Fatalf("second Toggle = (%v, %v), want (false, nil)", off, err)
	}
	if ok, _ := g.IsFollowing(ctx, ids["alice"], ids["bob"]); ok {
		t.Error("edge should be gone after second toggle")
	}
}

func TestGraph_UnfollowOnlyRemovesOneDirection(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice", "bob")
	g := NewGraph(st.Users(), st.Follows())
	ctx := context.Background()

	g.Follow(ctx, ids["alice"], ids["bob"])
	g.Follow(ctx, ids["bob"], ids["alice"])

	removed, err := g.Unfollow(ctx, ids["alice"], ids["bob"])
	if err != nil || !removed {
		t.Fatalf("Unfollow = (%v, %v), want (true, nil)", removed, err)
	}
	if ok, _ := g.IsFollowing(ctx, ids["bob"], ids["alice"]); !ok {
		t.Error("reverse edge should survive")
	}
	if ok, _ := g.AreConnected(ctx, ids["alice"], ids["bob"]); !ok {
		t.Error("still connected through reverse edge")
	}
}

func TestGraph_ListsResolveUsers(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice", "bob", "carol")
	g := NewGraph(st.Users(), st.Follows())
	ctx := context.Background()

	g.Follow(ctx, ids["alice"], ids["carol"])
	g.Follow(ctx, ids["bob"], ids["carol"])

	followers, err := g.Followers(ctx, ids["carol"])
	if err != nil {
		t.Fatalf("Followers: %v", err)
	}
	if len(followers) != 2 || followers[0].Username != "alice" || followers[1].Username != "bob" {
		t.Fatalf("followers = %+v, want [alice bob]", followers)
	}

	following, _ := g.Following(ctx, ids["alice"])
	if len(following) != 1 || following[0].Username != "carol" {
		t.Fatalf("following = %+v, want [carol]", following)
	}
}

func TestGraph_SelfFollowRejected(t *testing.T) {
	st := memory.New()
	ids := seedUsers(t, st, "alice")
	g := NewGraph(st.Users(), st.Follows())

	_, err := g.Follow(context.Background(), ids["alice"], ids["alice"])
	if !errors.Is(err, repository.ErrSelfReference) {
		t.Fatalf("err = %v, want ErrSelfReference", err)
	}
}
