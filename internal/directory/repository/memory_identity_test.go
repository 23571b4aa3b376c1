package repository

import (
	"context"
	"errors"
	"testing"

	"smartgym/pkg/model"
)

func TestMemoryIdentityRepository(t *testing.T) {
	repo := NewMemoryIdentityRepository()
	ctx := context.Background()

	if _, err := repo.FindIdentity(ctx, "12345678"); !errors.Is(err, ErrNotLinked) {
		t.Fatalf("expected ErrNotLinked, got %v", err)
	}

	link := &model.IdentityLink{DNI: "12345678", Email: "alice@gym.io", Role: model.RoleCustomer}
	if err := repo.UpsertIdentity(ctx, link); err != nil {
		t.Fatalf("UpsertIdentity() error: %v", err)
	}
	link.Email = "mutated@gym.io"

	got, err := repo.FindIdentity(ctx, "12345678")
	if err != nil {
		t.Fatalf("FindIdentity() error: %v", err)
	}
	if got.Email != "alice@gym.io" {
		t.Errorf("stored link must not alias the caller's value, got %s", got.Email)
	}

	if err := repo.UpsertIdentity(ctx, &model.IdentityLink{DNI: "12345678", Email: "bob@gym.io", Role: model.RoleCustomer}); err != nil {
		t.Fatalf("UpsertIdentity() error: %v", err)
	}
	if got, _ := repo.FindIdentity(ctx, "12345678"); got.Email != "bob@gym.io" {
		t.Errorf("expected relinked email bob@gym.io, got %s", got.Email)
	}
}
