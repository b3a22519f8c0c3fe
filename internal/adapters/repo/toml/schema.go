package toml

import (
	"errors"
	"fmt"

	"github.com/bnema/riftwatch/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Summoners []summonerSchema `toml:"summoners"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported roster schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// validateEntries rejects hand-edited entries the account API would refuse.
func (s fileSchema) validateEntries() error {
	var errs []error
	for i, entry := range s.Summoners {
		if _, _, err := domain.ParseRiotID(entry.GameName + "#" + entry.TagLine); err != nil {
			errs = append(errs, fmt.Errorf("summoners[%d]: %w", i, err))
			continue
		}
		if entry.Region != "" && !domain.KnownRegion(entry.Region) {
			errs = append(errs, fmt.Errorf("summoners[%d]: unknown region %q", i, entry.Region))
		}
	}

	return errors.Join(errs...)
}

type summonerSchema struct {
	GameName string `toml:"game_name"`
	TagLine  string `toml:"tag_line"`
	Region   string `toml:"region,omitempty"`
}
