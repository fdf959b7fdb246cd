package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	r := newUserRepo(time.Now)
	ctx := context.Background()

	u, err := r.Create(ctx, repository.CreateUserInput{
		Username:     "bob",
		Email:        "Bob@Example.com",
		BloodGroup:   "O+",
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated ID")
	}
	if u.Email != "bob@example.com" {
		t.Errorf("email = %q, want normalized lowercase", u.Email)
	}

	byEmail, err := r.GetByEmail(ctx, "BOB@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("GetByEmail = (%v, %v)", byEmail, err)
	}
	byName, err := r.GetByUsername(ctx, "bob")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("GetByUsername = (%v, %v)", byName, err)
	}
	if ok, _ := r.Exists(ctx, u.ID); !ok {
		t.Error("Exists = false, want true")
	}
}

func TestUserRepo_DuplicateConflicts(t *testing.T) {
	r := newUserRepo(time.Now)
	ctx := context.Background()

	in := repository.CreateUserInput{Username: "bob", Email: "bob@example.com", PasswordHash: "h"}
	if _, err := r.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := r.Create(ctx, in); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("dup username: err = %v, want ErrConflict", err)
	}
	in.Username = "bobby"
	if _, err := r.Create(ctx, in); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("dup email: err = %v, want ErrConflict", err)
	}
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	r := newUserRepo(time.Now)
	ctx := context.Background()

	r.Create(ctx, repository.CreateUserInput{Username: "bob", Email: "bob@example.com", PasswordHash: "old"})

	if err := r.UpdatePassword(ctx, "bob@example.com", "new"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	u, _ := r.GetByEmail(ctx, "bob@example.com")
	if u.PasswordHash != "new" {
		t.Errorf("hash = %q, want new", u.PasswordHash)
	}

	if err := r.UpdatePassword(ctx, "ghost@example.com", "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown email: err = %v, want ErrNotFound", err)
	}
}

func TestUserRepo_ListExcludes(t *testing.T) {
	r := newUserRepo(time.Now)
	ctx := context.Background()

	a, _ := r.Create(ctx, repository.CreateUserInput{Username: "a", Email: "a@x.com", PasswordHash: "h"})
	r.Create(ctx, repository.CreateUserInput{Username: "b", Email: "b@x.com", PasswordHash: "h"})
	r.Create(ctx, repository.CreateUserInput{Username: "c", Email: "c@x.com", PasswordHash: "h"})

	users, _ := r.List(ctx, a.ID)
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].Username != "b" || users[1].Username != "c" {
		t.Fatalf("order = [%s %s], want [b c]", users[0].Username, users[1].Username)
	}
}
