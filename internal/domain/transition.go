package domain

type TransitionKind int

const (
	NoChange TransitionKind = iota
	GameStarted
	GameEnded
)

func (k TransitionKind) String() string {
	switch k {
	case GameStarted:
		return "started"
	case GameEnded:
		return "ended"
	default:
		return "no_change"
	}
}

// Transition is the classified difference between what the source reports
// and what is persisted for one summoner.
type Transition struct {
	Kind TransitionKind
	// Game is set for GameStarted.
	Game *GameInfo
	// GameID is set for GameEnded.
	GameID int64
	// Featured marks an end discovered through match history rather than a
	// tracked active game.
	Featured bool
}

func Started(game GameInfo) Transition {
	return Transition{Kind: GameStarted, Game: &game, GameID: game.GameID}
}

func Ended(gameID int64, featured bool) Transition {
	return Transition{Kind: GameEnded, GameID: gameID, Featured: featured}
}
