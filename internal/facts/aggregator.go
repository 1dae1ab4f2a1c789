// Package facts releases authorized profile values for a subject.
package facts

import (
	"HRPolicyGateway/internal/authz"
	"HRPolicyGateway/internal/models"

	"go.uber.org/zap"
)

// Fact is one released profile value.
type Fact struct {
	Field models.Field
	Value any
}

// Bag keeps facts in release order.
type Bag []Fact

func (b Bag) Get(f models.Field) (any, bool) {
	for _, fact := range b {
		if fact.Field == f {
			return fact.Value, true
		}
	}
	return nil, false
}

// Map renders the bag for JSON responses. It is never nil.
func (b Bag) Map() map[string]any {
	m := make(map[string]any, len(b))
	for _, fact := range b {
		m[string(fact.Field)] = fact.Value
	}
	return m
}

// ProfileLookup is the read side of the profile store.
type ProfileLookup interface {
	Lookup(user string) (models.Profile, bool)
}

type Aggregator struct {
	profiles ProfileLookup
	logger   *zap.Logger
	onDeny   func(models.Field)
}

type Option func(*Aggregator)

// WithDenialHook registers a callback invoked once per denied field.
func WithDenialHook(fn func(models.Field)) Option {
	return func(a *Aggregator) { a.onDeny = fn }
}

func NewAggregator(profiles ProfileLookup, logger *zap.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{profiles: profiles, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate returns the requested fields the caller may see. Denied fields
// and values not on file are omitted; an unknown subject yields an empty bag.
func (a *Aggregator) Aggregate(subjectUser string, fields []models.Field, callerUser string, callerRoles []models.Role) Bag {
	profile, ok := a.profiles.Lookup(subjectUser)
	if !ok {
		return Bag{}
	}
	return a.release(profile, fields, callerUser, callerRoles)
}

// All releases every profile field the caller may see. ok is false when the
// subject is unknown.
func (a *Aggregator) All(subjectUser, callerUser string, callerRoles []models.Role) (Bag, bool) {
	profile, ok := a.profiles.Lookup(subjectUser)
	if !ok {
		return nil, false
	}
	return a.release(profile, models.ProfileFields, callerUser, callerRoles), true
}

func (a *Aggregator) release(profile models.Profile, fields []models.Field, callerUser string, callerRoles []models.Role) Bag {
	out := make(Bag, 0, len(fields))
	for _, f := range fields {
		if !authz.Authorized(f, profile.User, callerUser, callerRoles) {
			a.logger.Debug("Aggregate(): field denied",
				zap.String("field", string(f)),
				zap.String("subject", profile.User),
				zap.String("caller", callerUser))
			if a.onDeny != nil {
				a.onDeny(f)
			}
			continue
		}
		if v, ok := profile.Value(f); ok {
			out = append(out, Fact{Field: f, Value: v})
		}
	}
	return out
}
