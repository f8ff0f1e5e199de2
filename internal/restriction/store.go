package restriction

import (
	"log/slog"
	"strings"
	"sync"

	"rlv/internal/behavior"
)

// Store is the live restriction multiset, grouped by (behavior, issuer).
// Per-(behavior,issuer) multiplicity is a set, not a bag (spec.md §3).
//
// Store methods mutate under mu, collect the resulting Events into a local
// slice, release the lock, and return the slice to the caller — callers
// (internal/facade) are responsible for fanning events out to notification
// listeners outside of any lock, so a listener callback can never
// re-enter the store while it is held (spec.md §9).
type Store struct {
	mu    sync.RWMutex
	byKey map[behavior.Kind][]Restriction
}

// New returns an empty Store.
func New() *Store {
	return &Store{byKey: make(map[behavior.Kind][]Restriction)}
}

// Add inserts r if it is not already present. Returns the Event describing
// the mutation (IsNew=true), or no event if r was already present
// (add/remove idempotence, spec.md §8).
func (s *Store) Add(r Restriction) []Event {
	s.mu.Lock()
	existing := s.byKey[r.Behavior]
	for _, cur := range existing {
		if cur.Equal(r) {
			s.mu.Unlock()
			return nil
		}
	}
	s.byKey[r.Behavior] = append(existing, r)
	s.mu.Unlock()

	slog.Info("restriction added", slog.String("behavior", string(r.Behavior)), slog.String("issuer", r.IssuerPrimID))
	return []Event{{Restriction: r, IsNew: true}}
}

// Remove deletes r if present by equality. Returns the Event describing the
// mutation (IsDeleted=true), or no event if r was not present.
func (s *Store) Remove(r Restriction) []Event {
	s.mu.Lock()
	existing := s.byKey[r.Behavior]
	for i, cur := range existing {
		if cur.Equal(r) {
			s.byKey[r.Behavior] = append(existing[:i:i], existing[i+1:]...)
			s.mu.Unlock()
			slog.Info("restriction removed", slog.String("behavior", string(cur.Behavior)), slog.String("issuer", cur.IssuerPrimID))
			return []Event{{Restriction: cur, IsDeleted: true}}
		}
	}
	s.mu.Unlock()
	return nil
}

// Clear removes every restriction issued by issuerPrimID whose behavior
// canonical name contains nameSubstr (case-insensitive); an empty substring
// matches every behavior (spec.md §4.2, §8 "Clear locality").
func (s *Store) Clear(issuerPrimID, nameSubstr string) []Event {
	s.mu.Lock()
	nameSubstr = strings.ToLower(nameSubstr)
	var events []Event
	for kind, list := range s.byKey {
		if !strings.Contains(strings.ToLower(string(kind)), nameSubstr) {
			continue
		}
		var kept []Restriction
		for _, r := range list {
			if r.IssuerPrimID == issuerPrimID {
				events = append(events, Event{Restriction: r, IsDeleted: true})
				continue
			}
			kept = append(kept, r)
		}
		s.byKey[kind] = kept
	}
	s.mu.Unlock()

	if len(events) > 0 {
		slog.Info("restrictions cleared", slog.String("issuer", issuerPrimID), slog.String("filter", nameSubstr), slog.Int("count", len(events)))
	}
	return events
}

// RemoveByIssuer deletes every restriction from issuerPrimID, used when the
// host reports that an object vanished (spec.md §4.2, §8 "Remove-by-issuer
// completeness").
func (s *Store) RemoveByIssuer(issuerPrimID string) []Event {
	return s.Clear(issuerPrimID, "")
}

// Snapshot returns every live restriction of the given kind. If issuer is
// non-empty, results are filtered to that issuer. The returned slice is a
// copy safe to range over without holding the store lock.
func (s *Store) Snapshot(kind behavior.Kind, issuer string) []Restriction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byKey[kind]
	if issuer == "" {
		out := make([]Restriction, len(list))
		copy(out, list)
		return out
	}
	var out []Restriction
	for _, r := range list {
		if r.IssuerPrimID == issuer {
			out = append(out, r)
		}
	}
	return out
}

// SnapshotMatching returns every live restriction whose canonical name
// contains nameSubstr (case-insensitive), optionally filtered to issuer.
// Used by @getstatus/@getstatusall (spec.md §4.6).
func (s *Store) SnapshotMatching(nameSubstr, issuer string) []Restriction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nameSubstr = strings.ToLower(nameSubstr)
	var out []Restriction
	for kind, list := range s.byKey {
		if !strings.Contains(strings.ToLower(string(kind)), nameSubstr) {
			continue
		}
		for _, r := range list {
			if issuer == "" || r.IssuerPrimID == issuer {
				out = append(out, r)
			}
		}
	}
	return out
}

// All returns every live restriction across every kind.
func (s *Store) All() []Restriction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Restriction
	for _, list := range s.byKey {
		out = append(out, list...)
	}
	return out
}

// Issuers returns every distinct issuer prim id with at least one live
// restriction (spec.md §4.2 "Enumerate all live issuer prim ids").
func (s *Store) Issuers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, list := range s.byKey {
		for _, r := range list {
			if !seen[r.IssuerPrimID] {
				seen[r.IssuerPrimID] = true
				out = append(out, r.IssuerPrimID)
			}
		}
	}
	return out
}
