// Package store is the client for the remote hierarchical key-value
// document store. The store offers per-path reads and writes only: whole
// documents live under "<table>/<key>" and deeper path segments address
// nodes inside the document JSON. There are no cross-path transactions and
// no compare-and-swap; every update is a read-modify-write at document
// granularity, so concurrent writers on the same document can lose updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPathNotFound is returned when a read addresses a path with no value.
var ErrPathNotFound = errors.New("store: path not found")

// Backend persists whole documents keyed by "<table>/<key>".
// GetDoc returns nil with no error when the document does not exist.
type Backend interface {
	GetDoc(ctx context.Context, key string) (json.RawMessage, error)
	SetDoc(ctx context.Context, key string, value json.RawMessage) error
	DeleteDoc(ctx context.Context, key string) error
	ListKeys(ctx context.Context, table string) ([]string, error)
	Ping(ctx context.Context) error
}

// Client resolves hierarchical paths onto a document backend.
type Client struct {
	backend Backend
}

func NewClient(b Backend) *Client {
	return &Client{backend: b}
}

// splitPath breaks "users/<key>/wallet/..." into the backend document key
// ("users/<key>") and the remaining in-document segments.
func splitPath(path string) (docKey string, rest []string, err error) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return "", nil, fmt.Errorf("store: path %q must name at least <table>/<key>", path)
	}
	for _, s := range segs {
		if s == "" {
			return "", nil, fmt.Errorf("store: path %q has an empty segment", path)
		}
	}
	return segs[0] + "/" + segs[1], segs[2:], nil
}

// Get reads the value at path into out. Returns ErrPathNotFound when the
// document or the addressed node inside it is absent.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	docKey, rest, err := splitPath(path)
	if err != nil {
		return err
	}

	doc, err := c.backend.GetDoc(ctx, docKey)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrPathNotFound
	}

	if len(rest) == 0 {
		return json.Unmarshal(doc, out)
	}

	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return fmt.Errorf("store: decode %s: %w", docKey, err)
	}
	node, ok := getNested(root, rest)
	if !ok || node == nil {
		return ErrPathNotFound
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Exists reports whether path holds a value.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	var raw json.RawMessage
	err := c.Get(ctx, path, &raw)
	if errors.Is(err, ErrPathNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Set writes value at path, replacing whatever was there. Parent nodes are
// created as needed.
func (c *Client) Set(ctx context.Context, path string, value any) error {
	docKey, rest, err := splitPath(path)
	if err != nil {
		return err
	}

	plain, err := toPlain(value)
	if err != nil {
		return err
	}

	if len(rest) == 0 {
		raw, err := json.Marshal(plain)
		if err != nil {
			return err
		}
		return c.backend.SetDoc(ctx, docKey, raw)
	}

	root, err := c.loadRoot(ctx, docKey)
	if err != nil {
		return err
	}
	setNested(root, rest, plain)
	raw, err := json.Marshal(root)
	if err != nil {
		return err
	}
	return c.backend.SetDoc(ctx, docKey, raw)
}

// Update applies a multi-field patch relative to path as one document
// write. Patch keys may themselves be nested paths ("profile/lastLogin").
func (c *Client) Update(ctx context.Context, path string, patch map[string]any) error {
	docKey, rest, err := splitPath(path)
	if err != nil {
		return err
	}

	root, err := c.loadRoot(ctx, docKey)
	if err != nil {
		return err
	}
	for k, v := range patch {
		plain, err := toPlain(v)
		if err != nil {
			return err
		}
		segs := append(append([]string{}, rest...), strings.Split(strings.Trim(k, "/"), "/")...)
		setNested(root, segs, plain)
	}
	raw, err := json.Marshal(root)
	if err != nil {
		return err
	}
	return c.backend.SetDoc(ctx, docKey, raw)
}

// Delete removes the value at path. Deleting a whole document removes it
// from the backend; deleting an inner node rewrites the document without it.
func (c *Client) Delete(ctx context.Context, path string) error {
	docKey, rest, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return c.backend.DeleteDoc(ctx, docKey)
	}

	doc, err := c.backend.GetDoc(ctx, docKey)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return fmt.Errorf("store: decode %s: %w", docKey, err)
	}
	m, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	deleteNested(m, rest)
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.backend.SetDoc(ctx, docKey, raw)
}

// Keys lists the document keys stored under table, without the table prefix.
func (c *Client) Keys(ctx context.Context, table string) ([]string, error) {
	keys, err := c.backend.ListKeys(ctx, table)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, table+"/"))
	}
	return out, nil
}

// Ping reports backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}

func (c *Client) loadRoot(ctx context.Context, docKey string) (map[string]any, error) {
	doc, err := c.backend.GetDoc(ctx, docKey)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", docKey, err)
	}
	m, ok := root.(map[string]any)
	if !ok {
		// Scalar or array document being written into; start over.
		return map[string]any{}, nil
	}
	return m, nil
}

// toPlain re-encodes value through JSON so documents only ever hold plain
// JSON types regardless of the Go type written.
func toPlain(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func getNested(node any, segs []string) (any, bool) {
	for _, s := range segs {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[s]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func setNested(m map[string]any, segs []string, value any) {
	for _, s := range segs[:len(segs)-1] {
		child, ok := m[s].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[s] = child
		}
		m = child
	}
	m[segs[len(segs)-1]] = value
}

func deleteNested(m map[string]any, segs []string) {
	for _, s := range segs[:len(segs)-1] {
		child, ok := m[s].(map[string]any)
		if !ok {
			return
		}
		m = child
	}
	delete(m, segs[len(segs)-1])
}
