package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"HRPolicyGateway/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed/profiles.yaml
var defaultSeed []byte

type SeedCredential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Seed struct {
	Profiles    []models.Profile `yaml:"profiles"`
	Credentials []SeedCredential `yaml:"credentials"`
}

// LoadSeed reads a YAML seed file. An empty path selects the built-in seed.
func LoadSeed(path string) (Seed, error) {
	data := defaultSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Seed{}, fmt.Errorf("LoadSeed(): %w", err)
		}
		data = raw
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("LoadSeed(): parse: %w", err)
	}
	return seed, nil
}

// Apply writes the seed into d. Profiles already on file are kept, and so are
// existing credentials.
func (d *DB) Apply(ctx context.Context, seed Seed) error {
	if err := d.SeedProfiles(ctx, seed.Profiles); err != nil {
		return err
	}
	for _, c := range seed.Credentials {
		if err := d.CreateCredential(ctx, c.Username, c.Password); err != nil && !errors.Is(err, ErrUsernameExists) {
			return fmt.Errorf("Apply(): credential %s: %w", c.Username, err)
		}
	}
	return nil
}

// LoadProfileStore seeds d and snapshots every profile into an immutable store.
func LoadProfileStore(ctx context.Context, d *DB, seed Seed) (*ProfileStore, error) {
	if err := d.Apply(ctx, seed); err != nil {
		return nil, err
	}
	profiles, err := d.LoadProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("LoadProfileStore(): %w", err)
	}
	return NewProfileStore(profiles), nil
}
