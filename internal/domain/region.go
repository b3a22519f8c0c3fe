package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultRegion = "euw1"

var platformHosts = map[string]string{
	"br1":  "BR1",
	"eun1": "EUN1",
	"euw1": "EUW1",
	"jp1":  "JP1",
	"kr":   "KR",
	"la1":  "LA1",
	"la2":  "LA2",
	"na1":  "NA1",
	"oc1":  "OC1",
	"tr1":  "TR1",
	"ru":   "RU",
	"sg2":  "SG2",
	"tw2":  "TW2",
	"vn2":  "VN2",
}

var regionalRoutes = map[string]string{
	"br1":  "AMERICAS",
	"la1":  "AMERICAS",
	"la2":  "AMERICAS",
	"na1":  "AMERICAS",
	"jp1":  "ASIA",
	"kr":   "ASIA",
	"oc1":  "SEA",
	"sg2":  "SEA",
	"tw2":  "SEA",
	"vn2":  "SEA",
	"eun1": "EUROPE",
	"euw1": "EUROPE",
	"tr1":  "EUROPE",
	"ru":   "EUROPE",
}

// Platform returns the platform route (e.g. "EUW1") for a region shorthand.
// Unknown regions fall back to EUW1.
func Platform(region string) string {
	if p, ok := platformHosts[strings.ToLower(strings.TrimSpace(region))]; ok {
		return p
	}
	return "EUW1"
}

// Regional returns the regional route (AMERICAS, ASIA, SEA, EUROPE) used by
// the account and match APIs. Unknown regions fall back to EUROPE.
func Regional(region string) string {
	if r, ok := regionalRoutes[strings.ToLower(strings.TrimSpace(region))]; ok {
		return r
	}
	return "EUROPE"
}

func KnownRegion(region string) bool {
	_, ok := platformHosts[strings.ToLower(strings.TrimSpace(region))]
	return ok
}

// MatchID composes the match-history identifier of a game played on region.
func MatchID(region string, gameID int64) string {
	return fmt.Sprintf("%s_%d", Platform(region), gameID)
}

// ParseMatchGameID extracts the numeric game id after the last '_' of a match id.
func ParseMatchGameID(matchID string) (int64, error) {
	idx := strings.LastIndex(matchID, "_")
	if idx < 0 || idx == len(matchID)-1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMatchID, matchID)
	}

	gameID, err := strconv.ParseInt(matchID[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMatchID, matchID, err)
	}

	return gameID, nil
}
