package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	maxGameNameLength = 24
	maxTagLineLength  = 5
)

type SummonerID string

type Summoner struct {
	ID        SummonerID
	PUUID     string
	GameName  string
	TagLine   string
	Region    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Summoner) RiotID() string {
	return s.GameName + "#" + s.TagLine
}

// RosterEntry is a player configured for tracking, before it is resolved
// against the account API.
type RosterEntry struct {
	GameName string
	TagLine  string
	Region   string
}

func (e RosterEntry) RiotID() string {
	return e.GameName + "#" + e.TagLine
}

// SameRiotID compares Riot IDs the way the account API does: case-insensitive.
func (e RosterEntry) SameRiotID(other RosterEntry) bool {
	return strings.EqualFold(e.GameName, other.GameName) && strings.EqualFold(e.TagLine, other.TagLine)
}

// ParseRiotID splits "Name#TAG" on the last '#'.
func ParseRiotID(raw string) (gameName, tagLine string, err error) {
	raw = strings.TrimSpace(raw)
	idx := strings.LastIndex(raw, "#")
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q is missing '#'", ErrInvalidRiotID, raw)
	}

	gameName = strings.TrimSpace(raw[:idx])
	tagLine = strings.TrimSpace(raw[idx+1:])

	if err := validateGameName(gameName); err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidRiotID, raw, err)
	}
	if err := validateTagLine(tagLine); err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidRiotID, raw, err)
	}

	return gameName, tagLine, nil
}

// ParseRosterList parses a '|' separated list of Riot IDs, all tracked in region.
func ParseRosterList(raw, region string) ([]RosterEntry, error) {
	var entries []RosterEntry
	for _, part := range strings.Split(raw, "|") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		gameName, tagLine, err := ParseRiotID(part)
		if err != nil {
			return nil, err
		}
		entries = append(entries, RosterEntry{GameName: gameName, TagLine: tagLine, Region: region})
	}

	return entries, nil
}

func validateGameName(name string) error {
	if name == "" {
		return fmt.Errorf("game name is empty")
	}
	if len([]rune(name)) > maxGameNameLength {
		return fmt.Errorf("game name longer than %d characters", maxGameNameLength)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' && r != '_' {
			return fmt.Errorf("game name contains invalid character %q", r)
		}
	}

	return nil
}

func validateTagLine(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag line is empty")
	}
	if len([]rune(tag)) > maxTagLineLength {
		return fmt.Errorf("tag line longer than %d characters", maxTagLineLength)
	}
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("tag line contains invalid character %q", r)
		}
	}

	return nil
}
