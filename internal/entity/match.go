package entity

import (
	"fmt"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/apperror"
)

const (
	EmptyCell = ""

	// fadeAfter is the history length above which the oldest move fades.
	fadeAfter = 6
	// removeAfter is the history length above which the oldest move is removed.
	removeAfter = 7
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Move struct {
	Index  int    `json:"index"`
	Player string `json:"player"`
}

// Tally holds a per-mark counter.
type Tally struct {
	X int `json:"X"`
	O int `json:"O"`
}

func (that *Tally) Inc(mark string) {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

// Match is the board state of a room. Score survives Reset, everything else does not.
type Match struct {
	Board [9]string
	Faded map[int]bool
	Moves []Move
	Turn  string
	Shots Tally
	Score Tally
}

// TurnResult describes what a single move changed.
type TurnResult struct {
	Move     Move
	Faded    *Move
	Removed  *Move
	Winner   string
	WinCombo []int
}

func NewMatch() *Match {
	return &Match{
		Faded: make(map[int]bool),
		Turn:  PlayerX,
	}
}

// MakeTurn places mark on cell and applies the fade, removal and win rules.
// The turn marker only gates the move when enforceTurn is set.
func (that *Match) MakeTurn(mark string, cell int, enforceTurn bool) (*TurnResult, error) {
	if err := that.validateMove(mark, cell, enforceTurn); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	move := Move{Index: cell, Player: mark}

	that.Board[cell] = mark
	that.Shots.Inc(mark)
	that.Faded[cell] = false
	that.Moves = append(that.Moves, move)

	result := &TurnResult{Move: move}

	if len(that.Moves) > fadeAfter {
		oldest := that.Moves[0]
		if !that.Faded[oldest.Index] {
			that.Faded[oldest.Index] = true
			result.Faded = &oldest
		}
	}

	if len(that.Moves) > removeAfter {
		removed := that.Moves[0]
		that.Moves = that.Moves[1:]
		that.Board[removed.Index] = EmptyCell
		delete(that.Faded, removed.Index)
		result.Removed = &removed
	}

	if combo := that.WinningCombo(); combo != nil {
		result.WinCombo = combo
		result.Winner = that.Board[combo[0]]
	}

	that.Turn = ToggleMark(mark)

	return result, nil
}

// WinningCombo returns the first triple held by one mark with no faded cell, or nil.
func (that *Match) WinningCombo() []int {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a == EmptyCell || a != b || b != c {
			continue
		}

		if that.Faded[combo[0]] || that.Faded[combo[1]] || that.Faded[combo[2]] {
			continue
		}

		return []int{combo[0], combo[1], combo[2]}
	}

	return nil
}

func (that *Match) RecordWin(mark string) {
	that.Score.Inc(mark)
}

// Reset clears the board for a new round and keeps the score.
func (that *Match) Reset() {
	that.Board = [9]string{}
	that.Faded = make(map[int]bool)
	that.Moves = nil
	that.Shots = Tally{}
	that.Turn = PlayerX
}

func (that *Match) validateMove(mark string, cell int, enforceTurn bool) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !IsValidMark(mark) {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	if enforceTurn && that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}
