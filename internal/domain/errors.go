package domain

import "errors"

var (
	ErrStorage  = errors.New("storage error")
	ErrSource   = errors.New("source error")
	ErrDelivery = errors.New("delivery error")

	ErrSummonerNotFound    = errors.New("summoner not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrChampionNotFound    = errors.New("champion not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrRosterEntryNotFound = errors.New("roster entry not found")

	ErrInvalidRiotID  = errors.New("invalid riot id")
	ErrInvalidMatchID = errors.New("invalid match id")
)
