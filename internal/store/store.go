package store

import (
	"context"
	stderrors "errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/logger"
)

// Record is a profile keyed by username.
type Record interface {
	Key() string
}

// Snapshot is everything a backend could read. Skipped holds one error per
// record that could not be decoded.
type Snapshot[P Record] struct {
	Profiles []P
	Skipped  []error
}

// Backend reads and writes a full snapshot of profiles.
type Backend[P Record] interface {
	LoadAll(ctx context.Context) (Snapshot[P], error)
	SaveAll(ctx context.Context, profiles []P) error
	Location() string
}

// LoadResult summarises what Load found.
type LoadResult struct {
	Loaded  int
	Skipped int
	Fresh   bool  // nothing had been persisted yet
	Err     error // set when the snapshot was unreadable and the store started empty
}

// Notice returns the line to show the player after loading, or "" when
// there is nothing worth saying.
func (r LoadResult) Notice() string {
	switch {
	case r.Fresh:
		return "No existing profiles found. Starting fresh."
	case r.Err != nil:
		return "Saved profiles could not be read. Starting fresh."
	case r.Skipped > 0:
		return "Some saved profiles were damaged and have been skipped."
	default:
		return ""
	}
}

// Store owns the username to profile mapping for one process.
type Store[P Record] struct {
	backend    Backend[P]
	newProfile func(username string) P
	profiles   map[string]P
}

// New creates an empty store. newProfile builds the zero-valued profile
// used by GetOrCreate.
func New[P Record](backend Backend[P], newProfile func(username string) P) *Store[P] {
	return &Store[P]{
		backend:    backend,
		newProfile: newProfile,
		profiles:   make(map[string]P),
	}
}

// Load replaces the store's contents with the backend snapshot. It never
// fails: an unreadable snapshot leaves the store empty.
func (s *Store[P]) Load(ctx context.Context) LoadResult {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("loading profiles from %s", s.backend.Location())

	s.profiles = make(map[string]P)

	snap, err := s.backend.LoadAll(ctx)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			log.Info("no profiles at %s, starting fresh", s.backend.Location())
			return LoadResult{Fresh: true}
		}
		log.Warn("failed to load profiles, starting with an empty store: %v", err)
		return LoadResult{Err: err}
	}

	for _, skipped := range snap.Skipped {
		log.Warn("skipping profile record: %v", skipped)
	}
	for _, p := range snap.Profiles {
		if _, dup := s.profiles[p.Key()]; dup {
			log.Warn("duplicate profile for %q, keeping the later record", p.Key())
		}
		s.profiles[p.Key()] = p
	}

	log.Info("loaded %d profiles (%d skipped)", len(s.profiles), len(snap.Skipped))
	return LoadResult{
		Loaded:  len(s.profiles),
		Skipped: len(snap.Skipped),
		Fresh:   len(s.profiles) == 0 && len(snap.Skipped) == 0,
	}
}

// GetOrCreate returns the profile for username, inserting a zero-valued one
// when none exists. created reports whether it was inserted.
func (s *Store[P]) GetOrCreate(ctx context.Context, username string) (p P, created bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return p, false, errors.NewValidationError("username", "cannot be empty")
	}
	if existing, ok := s.profiles[username]; ok {
		return existing, false, nil
	}

	p = s.newProfile(username)
	s.profiles[username] = p
	logger.FromContext(ctx).WithPrefix("store").Debug("created profile: username=%s", username)
	return p, true, nil
}

// Get returns the profile for username.
func (s *Store[P]) Get(username string) (P, bool) {
	p, ok := s.profiles[username]
	return p, ok
}

// Put stores p under its key, replacing any previous value.
func (s *Store[P]) Put(p P) error {
	if p.Key() == "" {
		return errors.NewValidationError("username", "cannot be empty")
	}
	s.profiles[p.Key()] = p
	return nil
}

// Len returns the number of profiles.
func (s *Store[P]) Len() int {
	return len(s.profiles)
}

// List returns all profiles ordered by username.
func (s *Store[P]) List() []P {
	out := make([]P, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Save writes every profile through the backend, replacing what was there.
func (s *Store[P]) Save(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("saving %d profiles to %s", len(s.profiles), s.backend.Location())

	if err := s.backend.SaveAll(ctx, s.List()); err != nil {
		log.Error("failed to save profiles: %v", err)
		if errors.HasCode(err, errors.ErrCodePersistence) {
			return err
		}
		return errors.NewPersistenceError("save", s.backend.Location(), err)
	}

	log.Info("saved %d profiles to %s", len(s.profiles), s.backend.Location())
	return nil
}
