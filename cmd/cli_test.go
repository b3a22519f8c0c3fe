package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := isolatedHome(t)

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "riftwatch dev\n", stdout)
}

func TestRosterAddListRemove(t *testing.T) {
	home := isolatedHome(t)

	stdout, _, err := executeCLI(t, home, "roster", "add", "Caps#EUW", "Jankos#EUW", "--region", "EUW1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "added Caps#EUW (euw1)")
	assert.Contains(t, stdout, "added Jankos#EUW (euw1)")
	assert.FileExists(t, filepath.Join(home, ".config", "riftwatch", "roster.toml"))

	stdout, _, err = executeCLI(t, home, "roster", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Caps#EUW\teuw1\tfile")
	assert.Contains(t, stdout, "Jankos#EUW\teuw1\tfile")

	stdout, _, err = executeCLI(t, home, "roster", "remove", "caps#euw")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed caps#euw")

	stdout, _, err = executeCLI(t, home, "roster", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Caps#EUW")
	assert.Contains(t, stdout, "Jankos#EUW")
}

func TestRosterAddRejectsBadInput(t *testing.T) {
	home := isolatedHome(t)

	_, _, err := executeCLI(t, home, "roster", "add", "Caps#EUW", "--region", "moon1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown region \"moon1\"")

	_, _, err = executeCLI(t, home, "roster", "add", "NoTagHere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid riot id")
}

func TestRosterRemoveUnknownEntry(t *testing.T) {
	home := isolatedHome(t)

	_, _, err := executeCLI(t, home, "roster", "remove", "Ghost#EUW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the roster file")
}

func TestRosterListMergesConfiguredSummoners(t *testing.T) {
	home := isolatedHome(t)
	_, _, err := executeCLI(t, home, "roster", "add", "Caps#EUW")
	require.NoError(t, err)

	t.Setenv("SUMMONER_NAMES", "Rekkles#EUW|caps#euw")

	stdout, _, err := executeCLI(t, home, "roster", "list", "--json")
	require.NoError(t, err)

	var items []rosterListItem
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	assert.Equal(t, []rosterListItem{
		{RiotID: "Rekkles#EUW", Region: "euw1", Source: "config"},
		{RiotID: "Caps#EUW", Region: "euw1", Source: "file"},
	}, items)
}

func TestStatusWithEmptyDatabase(t *testing.T) {
	home := isolatedHome(t)

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "summoners: 0")
	assert.Contains(t, stdout, "No summoners tracked yet.")

	stdout, _, err = executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
}

func TestEventsWithEmptyQueue(t *testing.T) {
	home := isolatedHome(t)

	stdout, _, err := executeCLI(t, home, "events")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Queue is empty.")

	stdout, _, err = executeCLI(t, home, "events", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
}

func TestSyncRequiresRiotKey(t *testing.T) {
	home := isolatedHome(t)

	_, _, err := executeCLI(t, home, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "riot.api_key")
}

func TestServeRequiresCredentials(t *testing.T) {
	home := isolatedHome(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-test")

	_, _, err := executeCLI(t, home, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord.webhook_url")
	assert.NotContains(t, err.Error(), "riot.api_key")
}

func TestSyncResolvesRosterThenStatusShowsSummoners(t *testing.T) {
	server := newRiotFixtureServer(t)
	home := isolatedHome(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("RIFTWATCH_RIOT_BASE_URL", server.URL)
	t.Setenv("RIFTWATCH_DDRAGON_URL", server.URL)

	_, _, err := executeCLI(t, home, "roster", "add", "Caps#EUW", "Jankos#EUW")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "sync", "--json")
	require.NoError(t, err)

	var out syncOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Synced, 2)
	assert.Empty(t, out.Failed)
	assert.Equal(t, 2, out.Champions)
	assert.Equal(t, "puuid-Caps", out.Synced[0].PUUID)

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "summoners: 2")
	assert.Contains(t, stdout, "Caps#EUW (euw1)")
	assert.Contains(t, stdout, "Jankos#EUW (euw1)")
}

func TestSyncReportsUnknownAccounts(t *testing.T) {
	server := newRiotFixtureServer(t)
	home := isolatedHome(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("RIFTWATCH_RIOT_BASE_URL", server.URL)
	t.Setenv("RIFTWATCH_DDRAGON_URL", server.URL)
	t.Setenv("SUMMONER_NAMES", "Caps#EUW|Ghost#EUW")

	stdout, _, err := executeCLI(t, home, "sync", "--skip-champions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 summoners could not be synced")
	assert.Contains(t, stdout, "synced  Caps#EUW (euw1)")
	assert.Contains(t, stdout, "failed  Ghost#EUW")
	assert.NotContains(t, stdout, "champions:")
}

func TestInvalidConfigIsReportedForSubcommands(t *testing.T) {
	home := isolatedHome(t)
	t.Setenv("RIFTWATCH_DATABASE_DRIVER", "postgres")

	_, _, err := executeCLI(t, home, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "database.driver")
}

func TestConfigShowRedactsSecrets(t *testing.T) {
	home := isolatedHome(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-super-secret")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/token")

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "RGAPI-super-secret")
	assert.NotContains(t, stdout, "token")
	assert.Contains(t, stdout, "<redacted>")
}

func newRiotFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/riot/account/v1/accounts/by-riot-id/{name}/{tag}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "RGAPI-test", r.Header.Get("X-Riot-Token"))
		name := r.PathValue("name")
		if name == "Ghost" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, `{"puuid":"puuid-%s","gameName":%q,"tagLine":%q}`, name, name, r.PathValue("tag"))
	})
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `["15.1.1","15.0.1"]`)
	})
	mux.HandleFunc("/cdn/15.1.1/data/en_US/champion.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":{"Ahri":{"key":"103","name":"Ahri"},"Yasuo":{"key":"157","name":"Yasuo"}}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// isolatedHome returns a fresh HOME and clears every variable that could
// leak host configuration into a test run.
func isolatedHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"RIFTWATCH_CONFIG",
		"RIOT_API_KEY",
		"DISCORD_WEBHOOK_URL",
		"SUMMONER_NAMES",
		"DEFAULT_REGION",
		"DATABASE_PATH",
		"POLLING_INTERVAL_SECS",
	} {
		t.Setenv(key, "")
	}
	return home
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
