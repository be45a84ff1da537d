package token_test

import (
	"context"
	"testing"

	"github.com/tuskwatch/tuskwatch/internal/token"
)

func TestService_Register(t *testing.T) {
	repo := token.NewInMemoryRepository()
	service := token.NewService(repo)
	ctx := context.Background()

	result, err := service.Register(ctx, "fcm-token-abc123")
	if err != nil {
		t.Fatalf("failed to register token: %v", err)
	}
	if !result.Accepted {
		t.Error("expected first registration to be accepted")
	}

	count, err := service.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count tokens: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 registered token, got %d", count)
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	repo := token.NewInMemoryRepository()
	service := token.NewService(repo)
	ctx := context.Background()

	first, err := service.Register(ctx, "fcm-token-abc123")
	if err != nil {
		t.Fatalf("failed to register token: %v", err)
	}
	if !first.Accepted {
		t.Fatal("expected first registration to be accepted")
	}

	second, err := service.Register(ctx, "fcm-token-abc123")
	if err != nil {
		t.Fatalf("duplicate registration should not error: %v", err)
	}
	if second.Accepted {
		t.Error("expected duplicate registration to be rejected")
	}

	count, err := service.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count tokens: %v", err)
	}
	if count != 1 {
		t.Errorf("expected stored count to stay at 1, got %d", count)
	}
}

func TestService_Register_Empty(t *testing.T) {
	repo := token.NewInMemoryRepository()
	service := token.NewService(repo)

	_, err := service.Register(context.Background(), "")
	if err != token.ErrEmptyToken {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestService_List_NewestFirst(t *testing.T) {
	repo := token.NewInMemoryRepository()
	service := token.NewService(repo)
	ctx := context.Background()

	for _, tok := range []string{"token-one", "token-two", "token-three"} {
		if _, err := service.Register(ctx, tok); err != nil {
			t.Fatalf("failed to register %q: %v", tok, err)
		}
	}

	tokens, err := service.List(ctx)
	if err != nil {
		t.Fatalf("failed to list tokens: %v", err)
	}

	want := []string{"token-three", "token-two", "token-one"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}
