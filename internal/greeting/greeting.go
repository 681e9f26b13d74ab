// Package greeting keeps the homepage greeting rotation: a single
// persisted index that advances by one on every visit.
package greeting

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
)

// Default is the greeting rotation shown on the homepage.
var Default = []string{
	"> HELLO", "WELCOME", "Suh Dude", "HEYA", "HOWDY", "HOLA", "BONJOUR",
	"G'DAY", "ALOHA", "GREETINGS", "NICE", "Sup Nerds", "Salutations",
	"Hola Amigo", "Bonjour Mon Ami", "Ciao Bella", "Hallo Freunde",
	"Hej Kompis", "Olá Amigo", "こんにちは", "안녕하세요", "你好", "Привет",
	"مرحبا", "שלום חבר", "नमस्ते दोस्त", "Hej Vän", "Szia Barát",
	"Salut Prieten", "Hei Ystävä", "Halo Teman", "Sawubona Mngani",
	"Merhaba Arkadaş", "Hello There", "What's New", "Good Day", "Peace",
	"Bless Up", "Stay Beautiful", "Keep Going", "You Got This",
}

// State is the persisted rotation state.
type State struct {
	Index *int `json:"greeting_index,omitempty"`
}

// Store reads and writes the rotation index at a file path.
type Store struct {
	path string
	rnd  func(n int) int
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, rnd: rand.Intn}
}

// Load reads the state. A missing or empty file yields a zero State
// and no error.
func (s *Store) Load() (State, error) {
	var st State
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, fmt.Errorf("open state: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return st, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}

// Save writes the state atomically.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&st); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode state: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

// Next advances the rotation over n greetings and persists it. The first
// visit starts at a random index; later visits step by one and wrap.
func (s *Store) Next(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("greeting count must be positive, got %d", n)
	}
	st, err := s.Load()
	if err != nil {
		return 0, err
	}

	var idx int
	if st.Index == nil {
		idx = s.rnd(n)
	} else {
		idx = (*st.Index + 1) % n
		if idx < 0 {
			idx += n
		}
	}

	if err := s.Save(State{Index: &idx}); err != nil {
		return 0, err
	}
	return idx, nil
}

// Pick returns the greeting at index, wrapping out-of-range values.
func Pick(greetings []string, index int) string {
	if len(greetings) == 0 {
		return ""
	}
	index %= len(greetings)
	if index < 0 {
		index += len(greetings)
	}
	return greetings[index]
}
