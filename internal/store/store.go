// Package store keeps explicitly saved profiles in an encrypted zstore vault.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"

	"github.com/zarlcorp/zalias/internal/profile"
)

const collectionName = "profiles"

// minPrefix is the shortest ID prefix accepted by Find.
const minPrefix = 4

var (
	// ErrNotFound is returned when no saved profile matches an ID.
	ErrNotFound = errors.New("profile not found")
	// ErrAmbiguous is returned when an ID prefix matches several profiles.
	ErrAmbiguous = errors.New("ambiguous profile id")
)

// Record is a saved profile.
type Record struct {
	ID        string          `json:"id"`
	Profile   profile.Profile `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
}

// ShortID is the first eight characters of the record ID.
func (r Record) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}

// Store manages the encrypted profile collection.
type Store struct {
	zs      *zstore.Store
	records *zstore.Collection[Record]
	now     func() time.Time
}

// Open opens or initializes the vault on fsys. A wrong password yields
// zstore.ErrWrongPassword.
func Open(fsys zfilesystem.ReadWriteFileFS, password []byte) (*Store, error) {
	zs, err := zstore.Open(fsys, password)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	col, err := zstore.NewCollection[Record](zs, collectionName)
	if err != nil {
		zs.Close()
		return nil, fmt.Errorf("open vault: %w", err)
	}

	return &Store{zs: zs, records: col, now: time.Now}, nil
}

// Save stores p under a fresh ID.
func (s *Store) Save(p profile.Profile) (Record, error) {
	r := Record{
		ID:        uuid.NewString(),
		Profile:   p,
		CreatedAt: s.now().UTC(),
	}
	if err := s.records.Put(r.ID, r); err != nil {
		return Record{}, fmt.Errorf("save profile: %w", err)
	}
	return r, nil
}

// Get returns the record with exactly id.
func (s *Store) Get(id string) (Record, error) {
	ok, err := s.has(id)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r, err := s.records.Get(id)
	if err != nil {
		return Record{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	return r, nil
}

// Find resolves a full ID or a unique prefix of at least four characters.
func (s *Store) Find(prefix string) (Record, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < minPrefix {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, prefix)
	}

	all, err := s.List()
	if err != nil {
		return Record{}, err
	}

	var match []Record
	for _, r := range all {
		if r.ID == prefix {
			return r, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			match = append(match, r)
		}
	}

	switch len(match) {
	case 0:
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return match[0], nil
	}
	return Record{}, fmt.Errorf("%w: %s matches %d profiles", ErrAmbiguous, prefix, len(match))
}

// List returns all saved records, newest first.
func (s *Store) List() ([]Record, error) {
	all, err := s.records.List()
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	// zstore.List does not guarantee order
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// Delete removes the record with exactly id.
func (s *Store) Delete(id string) error {
	ok, err := s.has(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := s.records.Delete(id); err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}
	return nil
}

// Close releases the vault and its key material.
func (s *Store) Close() error {
	s.zs.Close()
	return nil
}

func (s *Store) has(id string) (bool, error) {
	all, err := s.records.List()
	if err != nil {
		return false, fmt.Errorf("list profiles: %w", err)
	}
	for _, r := range all {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}
