// Package presets manages the user's saved background descriptions. The
// store owns dedup and ordering; persistence is injected so tests run
// without a real backend.
package presets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// StorageKey is the single fixed key under which the JSON-encoded preset
// array lives in the backing key-value store.
const StorageKey = "studio_user_presets"

// KV abstracts the key-value persistence behind the store. Load reports
// whether a value existed; Store rewrites the full array.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, value []byte) error
}

// BuiltinPresets ship with the studio and are never persisted or removable.
var BuiltinPresets = []string{
	"A clean, white studio background with soft, diffused lighting.",
	"A rustic wooden tabletop with warm morning light.",
	"A polished marble surface with gentle window reflections.",
	"An outdoor lifestyle scene with soft bokeh greenery.",
}

// Store keeps the user presets in memory and writes through to the KV on
// every mutation. The mutex serializes read-modify-write cycles in-process;
// a second process racing on the same backend still ends last-writer-wins.
type Store struct {
	mu       sync.Mutex
	kv       KV
	builtins []string
	user     []string
	loaded   bool
}

// NewStore creates a store over kv. A nil builtins slice uses the defaults.
func NewStore(kv KV, builtins []string) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("presets: kv backend is required")
	}
	if builtins == nil {
		builtins = BuiltinPresets
	}
	return &Store{kv: kv, builtins: builtins}, nil
}

// List returns the built-in presets followed by the user's own, loading the
// persisted array on first use.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(s.builtins)+len(s.user))
	out = append(out, s.builtins...)
	out = append(out, s.user...)
	return out, nil
}

// Add saves a preset. Adding a string already present in the built-in or
// user lists is a no-op; the boolean reports whether anything was written.
func (s *Store) Add(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, fmt.Errorf("presets: empty preset")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	if contains(s.builtins, text) || contains(s.user, text) {
		return false, nil
	}
	s.user = append(s.user, text)
	if err := s.persist(ctx); err != nil {
		s.user = s.user[:len(s.user)-1]
		return false, err
	}
	return true, nil
}

// Remove deletes a user preset. Built-ins cannot be removed; unknown values
// are a no-op.
func (s *Store) Remove(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	for i, p := range s.user {
		if p == text {
			s.user = append(s.user[:i], s.user[i+1:]...)
			if err := s.persist(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	raw, ok, err := s.kv.Load(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("presets: load: %w", err)
	}
	if ok {
		var user []string
		if err := json.Unmarshal(raw, &user); err != nil {
			return fmt.Errorf("presets: corrupt preset store: %w", err)
		}
		s.user = user
	}
	s.loaded = true
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("presets: encode: %w", err)
	}
	if err := s.kv.Store(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("presets: persist: %w", err)
	}
	return nil
}

func contains(list []string, text string) bool {
	for _, p := range list {
		if p == text {
			return true
		}
	}
	return false
}
