package model

// RankingEntry is one row of the total-score leaderboard. Position is
// 1-based and dense, assigned after sorting by TotalScore descending with
// username ascending as the tiebreak.
type RankingEntry struct {
	Position   int    `json:"position"`
	Username   string `json:"username"`
	TotalScore int    `json:"total_score"`
}
