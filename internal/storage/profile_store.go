package storage

import "HRPolicyGateway/internal/models"

// ProfileStore is a read-only table of profiles keyed by normalized user.
// It is built once at startup and never mutated, so concurrent reads need no
// locking.
type ProfileStore struct {
	profiles map[string]models.Profile
}

func NewProfileStore(profiles []models.Profile) *ProfileStore {
	m := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		p.User = models.NormalizeUser(p.User)
		m[p.User] = clone(p)
	}
	return &ProfileStore{profiles: m}
}

func (s *ProfileStore) Lookup(user string) (models.Profile, bool) {
	p, ok := s.profiles[models.NormalizeUser(user)]
	if !ok {
		return models.Profile{}, false
	}
	return clone(p), true
}

func (s *ProfileStore) Len() int { return len(s.profiles) }

func clone(p models.Profile) models.Profile {
	out := models.Profile{User: p.User}
	out.Years = ptr(p.Years)
	out.DOB = ptr(p.DOB)
	out.Title = ptr(p.Title)
	out.Manager = ptr(p.Manager)
	out.Salary = ptr(p.Salary)
	out.PTOBalance = ptr(p.PTOBalance)
	return out
}

func ptr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
