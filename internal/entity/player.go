package entity

import "strings"

const botIDPrefix = "bot:"

type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.ID, botIDPrefix)
}

func NewBotPlayer(id, mark, gameID string) *Player {
	return &Player{
		ID:     botIDPrefix + id,
		Mark:   mark,
		GameID: gameID,
	}
}
