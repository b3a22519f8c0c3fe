// Package toml stores the tracked roster in a versioned TOML file.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	RosterPathKey    = "roster.path"
	rosterFileMode   = 0o600
	rosterDirMode    = 0o700
	rosterConfigDir  = ".config/riftwatch"
	rosterConfigFile = "roster.toml"
	tempFilePattern  = ".roster-*.toml.tmp"
)

type Repository struct {
	rosterPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RosterRepository = (*Repository)(nil)

// NewRepository reads roster.path from cfg, defaulting to
// ~/.config/riftwatch/roster.toml.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	rosterPath := cfg.GetString(RosterPathKey)
	if rosterPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		rosterPath = filepath.Join(homeDir, rosterConfigDir, rosterConfigFile)
	}

	rosterPath, err := normalizeRosterPath(rosterPath)
	if err != nil {
		return nil, err
	}

	return &Repository{rosterPath: rosterPath, mu: lockForPath(rosterPath)}, nil
}

func (r *Repository) Path() string {
	return r.rosterPath
}

func (r *Repository) Add(ctx context.Context, entry domain.RosterEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(entry)
	updated := false
	for i := range file.Summoners {
		if fromSchema(file.Summoners[i]).SameRiotID(entry) {
			file.Summoners[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Summoners = append(file.Summoners, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Remove(ctx context.Context, gameName, tagLine string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	target := domain.RosterEntry{GameName: gameName, TagLine: tagLine}
	kept := file.Summoners[:0]
	removed := false
	for _, entry := range file.Summoners {
		if fromSchema(entry).SameRiotID(target) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrRosterEntryNotFound, target.RiotID())
	}
	file.Summoners = kept

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RosterEntry, 0, len(file.Summoners))
	for _, entry := range file.Summoners {
		entries = append(entries, fromSchema(entry))
	}

	return entries, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.rosterPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read roster file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode roster file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	if err := file.validateEntries(); err != nil {
		return fileSchema{}, fmt.Errorf("invalid roster file %s: %w", r.rosterPath, err)
	}
	file.applyDefaults()

	return file, nil
}

func normalizeRosterPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve roster path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.rosterPath), rosterDirMode); err != nil {
		return fmt.Errorf("create roster directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode roster file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.rosterPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp roster file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp roster file: %w", err)
	}

	if err := tempFile.Chmod(rosterFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp roster file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp roster file: %w", err)
	}

	if err := os.Rename(tempName, r.rosterPath); err != nil {
		return fmt.Errorf("replace roster file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.rosterPath, rosterFileMode); err != nil {
		return fmt.Errorf("chmod roster file: %w", err)
	}

	return nil
}

func toSchema(entry domain.RosterEntry) summonerSchema {
	return summonerSchema{
		GameName: strings.TrimSpace(entry.GameName),
		TagLine:  strings.TrimSpace(entry.TagLine),
		Region:   strings.ToLower(strings.TrimSpace(entry.Region)),
	}
}

func fromSchema(entry summonerSchema) domain.RosterEntry {
	return domain.RosterEntry{
		GameName: entry.GameName,
		TagLine:  entry.TagLine,
		Region:   entry.Region,
	}
}
