package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/bnema/riftwatch/internal/ports"
)

// SyncFailure is a roster entry that could not be resolved or stored.
type SyncFailure struct {
	Entry domain.RosterEntry
	Err   error
}

type SyncReport struct {
	Synced []domain.Summoner
	Failed []SyncFailure
}

// SyncProgress is called after each roster entry is handled.
type SyncProgress func(done, total int, entry domain.RosterEntry)

// Registrar turns configured Riot IDs into stored summoners and keeps the
// champion table current.
type Registrar struct {
	repo     ports.Repository
	accounts ports.AccountResolver
	catalog  ports.ChampionCatalog
	log      slog.Logger
}

func NewRegistrar(repo ports.Repository, accounts ports.AccountResolver, catalog ports.ChampionCatalog, log slog.Logger) *Registrar {
	return &Registrar{
		repo:     repo,
		accounts: accounts,
		catalog:  catalog,
		log:      log.Named("registrar"),
	}
}

// SyncRoster resolves every entry and upserts the result. Per-entry failures
// are collected in the report; only cancellation aborts the sync.
func (r *Registrar) SyncRoster(ctx context.Context, entries []domain.RosterEntry, progress SyncProgress) (SyncReport, error) {
	var report SyncReport
	entries = dedupeRoster(entries)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		summoner, err := r.syncEntry(ctx, entry)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			r.log.Warn(ctx, "sync summoner", slog.F("riot_id", entry.RiotID()), slog.Error(err))
			report.Failed = append(report.Failed, SyncFailure{Entry: entry, Err: err})
		} else {
			r.log.Info(ctx, "summoner synced",
				slog.F("riot_id", summoner.RiotID()),
				slog.F("region", summoner.Region),
			)
			report.Synced = append(report.Synced, summoner)
		}

		if progress != nil {
			progress(i+1, len(entries), entry)
		}
	}

	return report, nil
}

func (r *Registrar) syncEntry(ctx context.Context, entry domain.RosterEntry) (domain.Summoner, error) {
	region := strings.ToLower(strings.TrimSpace(entry.Region))
	if region == "" {
		region = domain.DefaultRegion
	}
	if !domain.KnownRegion(region) {
		return domain.Summoner{}, fmt.Errorf("unknown region %q", entry.Region)
	}

	account, err := r.accounts.AccountByRiotID(ctx, entry.GameName, entry.TagLine, region)
	if err != nil {
		return domain.Summoner{}, fmt.Errorf("resolve account: %w", err)
	}

	gameName, tagLine := account.GameName, account.TagLine
	if gameName == "" {
		gameName = entry.GameName
	}
	if tagLine == "" {
		tagLine = entry.TagLine
	}

	summoner, err := r.repo.UpsertSummoner(ctx, domain.Summoner{
		PUUID:    account.PUUID,
		GameName: gameName,
		TagLine:  tagLine,
		Region:   region,
	})
	if err != nil {
		return domain.Summoner{}, fmt.Errorf("upsert summoner: %w", err)
	}
	return summoner, nil
}

// SyncChampions refreshes the champion name table from the catalog and
// returns the number of champions stored.
func (r *Registrar) SyncChampions(ctx context.Context) (int, error) {
	champions, err := r.catalog.Champions(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch champions: %w", err)
	}

	var errs []error
	stored := 0
	for _, champion := range champions {
		if err := r.repo.UpsertChampion(ctx, champion); err != nil {
			errs = append(errs, fmt.Errorf("upsert champion %d: %w", champion.ID, err))
			continue
		}
		stored++
	}

	r.log.Debug(ctx, "champions synced", slog.F("count", stored))
	return stored, errors.Join(errs...)
}

func dedupeRoster(entries []domain.RosterEntry) []domain.RosterEntry {
	out := make([]domain.RosterEntry, 0, len(entries))
	for _, entry := range entries {
		dup := false
		for _, seen := range out {
			if seen.SameRiotID(entry) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, entry)
		}
	}
	return out
}
