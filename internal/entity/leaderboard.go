package entity

// LeaderboardEntry - a single row of the win-count leaderboard.
type LeaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Wins     int    `json:"wins"`
}
