package store

import (
	"context"
	"errors"
	"testing"
)

func newTestClient() *Client {
	return NewClient(NewMemoryBackend())
}

func TestSetGetWholeDocument(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	in := map[string]any{"name": "x", "count": float64(3)}
	if err := c.Set(ctx, "users/u1", in); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out map[string]any
	if err := c.Get(ctx, "users/u1", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out["name"] != "x" || out["count"] != float64(3) {
		t.Fatalf("unexpected doc: %v", out)
	}
}

func TestGetNestedPath(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	if err := c.Set(ctx, "users/u1", map[string]any{
		"profile": map[string]any{"email": "a@b.com"},
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var email string
	if err := c.Get(ctx, "users/u1/profile/email", &email); err != nil {
		t.Fatalf("get nested: %v", err)
	}
	if email != "a@b.com" {
		t.Fatalf("expected a@b.com, got %q", email)
	}
}

func TestGetMissingPath(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	var out any
	if err := c.Get(ctx, "users/absent", &out); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound for missing doc, got %v", err)
	}

	if err := c.Set(ctx, "users/u1", map[string]any{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if err := c.Get(ctx, "users/u1/missing/deeper", &out); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound for missing node, got %v", err)
	}
}

func TestSetNestedCreatesParents(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	if err := c.Set(ctx, "users/u1/links/website/list/id1", map[string]any{"code": "abc"}); err != nil {
		t.Fatalf("set nested: %v", err)
	}

	var code string
	if err := c.Get(ctx, "users/u1/links/website/list/id1/code", &code); err != nil {
		t.Fatalf("get: %v", err)
	}
	if code != "abc" {
		t.Fatalf("expected abc, got %q", code)
	}
}

func TestUpdateAppliesNestedPatchKeys(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	if err := c.Set(ctx, "users/u1", map[string]any{
		"profile": map[string]any{"email": "a@b.com", "lastLogin": float64(1)},
		"wallet":  map[string]any{"currentBalance": float64(5)},
	}); err != nil {
		t.Fatal(err)
	}

	if err := c.Update(ctx, "users/u1", map[string]any{
		"profile/lastLogin":     float64(99),
		"wallet/currentBalance": float64(7),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var lastLogin float64
	if err := c.Get(ctx, "users/u1/profile/lastLogin", &lastLogin); err != nil {
		t.Fatal(err)
	}
	if lastLogin != 99 {
		t.Fatalf("expected lastLogin 99, got %v", lastLogin)
	}

	// Sibling fields stay intact.
	var email string
	if err := c.Get(ctx, "users/u1/profile/email", &email); err != nil {
		t.Fatal(err)
	}
	if email != "a@b.com" {
		t.Fatalf("patch clobbered sibling field: %q", email)
	}
}

func TestUpdateOnMissingDocumentCreatesIt(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	if err := c.Update(ctx, "allLinks/code1", map[string]any{"totalUses": float64(1)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var uses float64
	if err := c.Get(ctx, "allLinks/code1/totalUses", &uses); err != nil {
		t.Fatal(err)
	}
	if uses != 1 {
		t.Fatalf("expected totalUses 1, got %v", uses)
	}
}

func TestExists(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	ok, err := c.Exists(ctx, "users/u1")
	if err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "users/u1", map[string]any{"a": 1}); err != nil {
		t.Fatal(err)
	}
	ok, err = c.Exists(ctx, "users/u1")
	if err != nil || !ok {
		t.Fatalf("expected present, got ok=%v err=%v", ok, err)
	}
}

func TestDeleteInnerNode(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	if err := c.Set(ctx, "users/u1", map[string]any{
		"a": float64(1),
		"b": float64(2),
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "users/u1/a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var out any
	if err := c.Get(ctx, "users/u1/a", &out); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected deleted node to be absent, got %v", err)
	}
	var b float64
	if err := c.Get(ctx, "users/u1/b", &b); err != nil || b != 2 {
		t.Fatalf("sibling lost on delete: b=%v err=%v", b, err)
	}
}

func TestKeysListsTable(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	for _, k := range []string{"users/a", "users/b", "allLinks/x"} {
		if err := c.Set(ctx, k, map[string]any{"v": 1}); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := c.Keys(ctx, "users")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestPathValidation(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	var out any
	if err := c.Get(ctx, "users", &out); err == nil {
		t.Fatal("expected error for table-only path")
	}
	if err := c.Set(ctx, "users//bad", map[string]any{}); err == nil {
		t.Fatal("expected error for empty segment")
	}
}

func TestWriteTypedStructReadsBackAsPlainJSON(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()

	type profile struct {
		Email string `json:"email"`
		UID   string `json:"uid"`
	}
	if err := c.Set(ctx, "users/u1/profile", profile{Email: "a@b.com", UID: "u-1"}); err != nil {
		t.Fatal(err)
	}

	var got profile
	if err := c.Get(ctx, "users/u1/profile", &got); err != nil {
		t.Fatal(err)
	}
	if got.Email != "a@b.com" || got.UID != "u-1" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}
