package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(RosterPathKey, path)
	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	caps := domain.RosterEntry{GameName: "Caps", TagLine: "EUW", Region: "euw1"}
	faker := domain.RosterEntry{GameName: "Hide on bush", TagLine: "KR1", Region: "kr"}

	require.NoError(t, repo.Add(context.Background(), caps))
	require.NoError(t, repo.Add(context.Background(), faker))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RosterEntry{caps, faker}, entries)
}

func TestRepositoryAddReplacesSameRiotID(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	require.NoError(t, repo.Add(context.Background(), domain.RosterEntry{GameName: "caps", TagLine: "euw", Region: "euw1"}))
	require.NoError(t, repo.Add(context.Background(), domain.RosterEntry{GameName: "Caps", TagLine: "EUW", Region: "EUN1"}))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RosterEntry{{GameName: "Caps", TagLine: "EUW", Region: "eun1"}}, entries)
}

func TestRepositoryRemove(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "roster.toml"))
	require.NoError(t, repo.Add(context.Background(), domain.RosterEntry{GameName: "Caps", TagLine: "EUW"}))
	require.NoError(t, repo.Add(context.Background(), domain.RosterEntry{GameName: "Jankos", TagLine: "EUW"}))

	require.NoError(t, repo.Remove(context.Background(), "CAPS", "euw"))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RosterEntry{{GameName: "Jankos", TagLine: "EUW"}}, entries)

	err = repo.Remove(context.Background(), "Caps", "EUW")
	require.ErrorIs(t, err, domain.ErrRosterEntryNotFound)
}

func TestRepositoryAddCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Add(context.Background(), domain.RosterEntry{GameName: "Caps", TagLine: "EUW"}))

	rosterPath := filepath.Join(homeDir, ".config", "riftwatch", "roster.toml")
	assert.Equal(t, rosterPath, repo.Path())
	info, err := os.Stat(rosterPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "roster.toml"))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	rosterPath := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(rosterPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[summoners]]",
		"game_name = \"Caps\"",
		"tag_line = \"EUW\"",
		"",
		"[[summoners]]",
		"game_name = \"Doublelift\"",
		"tag_line = \"NA1\"",
		"region = \"na1\"",
		"",
	}, "\n")), 0o600))

	entries, err := newTestRepository(t, rosterPath).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RosterEntry{
		{GameName: "Caps", TagLine: "EUW"},
		{GameName: "Doublelift", TagLine: "NA1", Region: "na1"},
	}, entries)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	rosterPath := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(rosterPath, []byte("summoners = ["), 0o600))

	_, err := newTestRepository(t, rosterPath).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode roster file")
}

func TestRepositoryAddCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "roster.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Add(ctx, domain.RosterEntry{GameName: "Caps", TagLine: "EUW"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentAddsAcrossInstancesPreserveAllEntries(t *testing.T) {
	t.Parallel()

	rosterPath := filepath.Join(t.TempDir(), "roster.toml")
	repoA := newTestRepository(t, rosterPath)
	repoB := newTestRepository(t, rosterPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Add(context.Background(), domain.RosterEntry{GameName: prefix + strconv.Itoa(i), TagLine: "EUW"})
		}
	}
	go write(repoA, "a")
	go write(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	entries, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, perRepoWrites*2)
}

func TestRepositorySerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	rosterPath := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, newTestRepository(t, rosterPath).Add(context.Background(), domain.RosterEntry{GameName: "Caps", TagLine: "EUW"}))

	data, err := os.ReadFile(rosterPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	rosterPath := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(rosterPath, []byte("version = 999\n\nsummoners = []\n"), 0o600))

	_, err := newTestRepository(t, rosterPath).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported roster schema version")
}

func TestRepositoryRejectsInvalidHandWrittenEntries(t *testing.T) {
	t.Parallel()

	rosterPath := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(rosterPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[summoners]]",
		"game_name = \"Caps\"",
		"tag_line = \"TOOLONG\"",
		"",
		"[[summoners]]",
		"game_name = \"Rekkles\"",
		"tag_line = \"EUW\"",
		"region = \"moon1\"",
		"",
	}, "\n")), 0o600))

	_, err := newTestRepository(t, rosterPath).List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRiotID)
	assert.ErrorContains(t, err, "summoners[0]")
	assert.ErrorContains(t, err, `summoners[1]: unknown region "moon1"`)
}
