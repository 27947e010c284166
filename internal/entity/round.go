package entity

import "time"

// Round is the archived outcome of a won round.
type Round struct {
	RoomID     string    `json:"room_id"`
	Winner     string    `json:"winner"`
	WinCombo   []int     `json:"win_combo"`
	Score      Tally     `json:"score"`
	Shots      Tally     `json:"shots"`
	FinishedAt time.Time `json:"finished_at"`
}
