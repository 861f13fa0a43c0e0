package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"

	"github.com/zarlcorp/zalias/internal/profile"
)

func newTestProfile(name string) profile.Profile {
	pw := "Zq9!x-Lm2@"
	return profile.Profile{
		Name:      name,
		Username:  "aria_sol0420",
		Password:  &pw,
		Country:   "Japan",
		City:      "Kyoto",
		Birthdate: &profile.Birthdate{Day: 7, Month: 3, Year: 1990},
		Age:       36,
	}
}

func openTestStore(t *testing.T) (*Store, *zfilesystem.MemFS) {
	t.Helper()
	fs := zfilesystem.NewMemFS()
	s, err := Open(fs, []byte("testpass"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, fs
}

// fixedClock returns successive times one minute apart.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func TestReopenWithCorrectPassword(t *testing.T) {
	fs := zfilesystem.NewMemFS()

	s1, err := Open(fs, []byte("testpass"))
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(fs, []byte("testpass"))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()
}

func TestWrongPasswordFails(t *testing.T) {
	fs := zfilesystem.NewMemFS()

	s, err := Open(fs, []byte("correct"))
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.Close()

	_, err = Open(fs, []byte("wrong"))
	if !errors.Is(err, zstore.ErrWrongPassword) {
		t.Fatalf("error = %v, want ErrWrongPassword", err)
	}
}

func TestSaveAndGet(t *testing.T) {
	s, _ := openTestStore(t)
	want := newTestProfile("Aria Sol")

	r, err := s.Save(want)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(r.ID) != 36 {
		t.Errorf("id %q is not a uuid", r.ID)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	got, err := s.Get(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertProfileEqual(t, want, got.Profile)
}

func TestSaveAssignsDistinctIDs(t *testing.T) {
	s, _ := openTestStore(t)

	seen := make(map[string]bool)
	for range 5 {
		r, err := s.Save(newTestProfile("Aria Sol"))
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		seen[r.ID] = true
	}
	if len(seen) != 5 {
		t.Errorf("got %d distinct ids, want 5", len(seen))
	}
}

func TestSaveWithoutPassword(t *testing.T) {
	s, _ := openTestStore(t)
	p := newTestProfile("Aria Sol")
	p.Password = nil

	r, err := s.Save(p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Profile.HasPassword() {
		t.Error("password should stay absent")
	}
}

func TestGetNotFound(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Get("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("get nonexistent: got %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s, _ := openTestStore(t)
	s.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, name := range []string{"oldest", "middle", "newest"} {
		if _, err := s.Save(newTestProfile(name)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list length: got %d, want 3", len(list))
	}

	for i, want := range []string{"newest", "middle", "oldest"} {
		if list[i].Profile.Name != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].Profile.Name, want)
		}
	}
}

func TestListEmptyStore(t *testing.T) {
	s, _ := openTestStore(t)

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list length: got %d, want 0", len(list))
	}
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)

	r, err := s.Save(newTestProfile("Aria Sol"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = s.Get(r.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s, _ := openTestStore(t)

	err := s.Delete("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete nonexistent: got %v, want ErrNotFound", err)
	}
}

func TestFind(t *testing.T) {
	s, _ := openTestStore(t)

	r, err := s.Save(newTestProfile("Aria Sol"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"full id", r.ID, nil},
		{"short id", r.ShortID(), nil},
		{"upper case", strings.ToUpper(r.ShortID()), nil},
		{"too short", r.ID[:3], ErrNotFound},
		{"no match", "ffffffff-none", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Find(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find(%q): %v", tt.in, err)
			}
			if got.ID != r.ID {
				t.Errorf("Find(%q) = %s, want %s", tt.in, got.ID, r.ID)
			}
		})
	}
}

func TestFindAmbiguous(t *testing.T) {
	s, _ := openTestStore(t)

	// uuids are random, so seed two records sharing a prefix directly
	for _, id := range []string{"abcd0001-x", "abcd0002-x"} {
		r := Record{ID: id, Profile: newTestProfile(id), CreatedAt: time.Now()}
		if err := s.records.Put(r.ID, r); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	if _, err := s.Find("abcd"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("error = %v, want ErrAmbiguous", err)
	}
	if r, err := s.Find("abcd0002"); err != nil || r.ID != "abcd0002-x" {
		t.Errorf("Find(abcd0002) = %v, %v", r.ID, err)
	}
}

func TestDataPersistsAcrossReopen(t *testing.T) {
	fs := zfilesystem.NewMemFS()

	s1, err := Open(fs, []byte("testpass"))
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	want := newTestProfile("Aria Sol")
	r, err := s1.Save(want)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	s1.Close()

	s2, err := Open(fs, []byte("testpass"))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(r.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	assertProfileEqual(t, want, got.Profile)
	if !got.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, r.CreatedAt)
	}
}

func TestShortID(t *testing.T) {
	if got := (Record{ID: "0123456789"}).ShortID(); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := (Record{ID: "abc"}).ShortID(); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func assertProfileEqual(t *testing.T, want, got profile.Profile) {
	t.Helper()

	checks := []struct {
		field     string
		got, want any
	}{
		{"Name", got.Name, want.Name},
		{"Username", got.Username, want.Username},
		{"Country", got.Country, want.Country},
		{"City", got.City, want.City},
		{"Age", got.Age, want.Age},
		{"HasPassword", got.HasPassword(), want.HasPassword()},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.field, c.got, c.want)
		}
	}

	if want.HasPassword() && got.HasPassword() && *got.Password != *want.Password {
		t.Errorf("Password: got %q, want %q", *got.Password, *want.Password)
	}
	if (got.Birthdate == nil) != (want.Birthdate == nil) {
		t.Fatalf("Birthdate presence: got %v, want %v", got.Birthdate, want.Birthdate)
	}
	if want.Birthdate != nil && *got.Birthdate != *want.Birthdate {
		t.Errorf("Birthdate: got %v, want %v", *got.Birthdate, *want.Birthdate)
	}
}
