package domain

// StartedPlayer is one summoner's line in a game-started notification.
type StartedPlayer struct {
	Summoner     Summoner
	ChampionName string
}

type StartedSummary struct {
	GameID   int64
	GameMode string
	QueueID  int
	Players  []StartedPlayer
}

type EndedPlayer struct {
	Summoner Summoner
	Result   MatchResult
}

type EndedSummary struct {
	MatchID  string
	GameMode string
	QueueID  int
	Featured bool
	Players  []EndedPlayer
}

func (s EndedSummary) Record() (wins, losses int) {
	for _, p := range s.Players {
		if p.Result.Win {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}
