package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/octovision/auth-service/internal/user"
)

func resolverFixture(t *testing.T) (*Service, *Resolver, user.Repository) {
	t.Helper()
	repo := user.NewMemoryRepository()
	codec := NewCodec([]byte("test-secret"), time.Hour)
	svc := NewService(repo, NewHasher(4), codec)
	return svc, NewResolver(codec, repo), repo
}

func TestResolveRoundTrip(t *testing.T) {
	svc, resolver, _ := resolverFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.com", "pw1", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	identity, err := resolver.Resolve(ctx, token.AccessToken)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.ID != registered.ID {
		t.Fatalf("id mismatch: got %q want %q", identity.ID, registered.ID)
	}
	if identity.Email != "a@x.com" || identity.Role != user.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestResolveUsesLiveRecordNotClaims(t *testing.T) {
	repo := user.NewMemoryRepository()
	codec := NewCodec([]byte("test-secret"), time.Hour)
	resolver := NewResolver(codec, repo)
	ctx := context.Background()

	u := user.User{ID: "0c5f2f6e-8d2f-4f3a-9d41-7f1f5f2a9b10", Email: "a@x.com", Role: user.RoleAdmin}
	if err := repo.Insert(ctx, u); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Token claims say "user"; the stored record says "admin". The live
	// record wins, so a role change applies to outstanding tokens.
	token, err := codec.Issue(u.ID, u.Email, user.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	identity, err := resolver.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.Role != user.RoleAdmin {
		t.Fatalf("expected role from live record, got %q", identity.Role)
	}
}

func TestResolveFailuresCollapseToUnauthenticated(t *testing.T) {
	svc, resolver, _ := resolverFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "pw1", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	expiredCodec := NewCodec([]byte("test-secret"), time.Hour)
	expired, err := expiredCodec.IssueWithTTL("0c5f2f6e-8d2f-4f3a-9d41-7f1f5f2a9b10", "a@x.com", "user", -time.Second)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}

	otherSecret := NewCodec([]byte("other-secret"), time.Hour)
	forged, err := otherSecret.Issue("0c5f2f6e-8d2f-4f3a-9d41-7f1f5f2a9b10", "a@x.com", "admin")
	if err != nil {
		t.Fatalf("issue forged: %v", err)
	}

	notUUID := NewCodec([]byte("test-secret"), time.Hour)
	badSubject, err := notUUID.Issue("not-an-identifier", "a@x.com", "user")
	if err != nil {
		t.Fatalf("issue bad subject: %v", err)
	}

	emptySubject, err := notUUID.Issue("", "a@x.com", "user")
	if err != nil {
		t.Fatalf("issue empty subject: %v", err)
	}

	deleted, err := notUUID.Issue("5b0f66de-13a7-4cf1-9f47-0f2b0e6b6a31", "ghost@x.com", "user")
	if err != nil {
		t.Fatalf("issue deleted subject: %v", err)
	}

	cases := map[string]string{
		"malformed":       "not.a.token",
		"empty":           "",
		"expired":         expired,
		"forged":          forged,
		"bad subject":     badSubject,
		"empty subject":   emptySubject,
		"deleted subject": deleted,
	}
	for name, tok := range cases {
		if _, err := resolver.Resolve(ctx, tok); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}

	// Sanity: the valid token still resolves.
	if _, err := resolver.Resolve(ctx, token.AccessToken); err != nil {
		t.Fatalf("valid token: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	identity := Identity{ID: "id-1", Email: "a@x.com", Role: user.RoleUser}

	if _, err := RequireRole(identity, user.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := Identity{ID: "id-2", Email: "b@x.com", Role: user.RoleAdmin}
	got, err := RequireRole(admin, user.RoleAdmin)
	if err != nil {
		t.Fatalf("require role: %v", err)
	}
	if got != admin {
		t.Fatalf("expected identity returned unchanged, got %+v", got)
	}
}
