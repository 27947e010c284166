package entity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/infinity-tictactoe/internal/apperror"
)

func TestNewMatch(t *testing.T) {
	// When: a new match is created
	match := NewMatch()

	// Then: the board is empty and X moves first
	assert.Equal(t, [9]string{}, match.Board)
	assert.Empty(t, match.Moves)
	assert.Empty(t, match.Faded)
	assert.Equal(t, PlayerX, match.Turn)
	assert.Equal(t, Tally{}, match.Shots)
	assert.Equal(t, Tally{}, match.Score)
}

func TestMatch_MakeTurn(t *testing.T) {
	t.Run("Successful turn", func(t *testing.T) {
		// Given: a new match
		match := NewMatch()

		// When: X places on cell 4
		result, err := match.MakeTurn(PlayerX, 4, false)
		require.NoError(t, err)

		// Then: the cell is occupied, recorded and the turn passes to O
		assert.Equal(t, Move{Index: 4, Player: PlayerX}, result.Move)
		assert.Nil(t, result.Faded)
		assert.Nil(t, result.Removed)
		assert.Empty(t, result.Winner)
		assert.Nil(t, result.WinCombo)

		assert.Equal(t, PlayerX, match.Board[4])
		assert.Equal(t, []Move{{Index: 4, Player: PlayerX}}, match.Moves)
		assert.Equal(t, map[int]bool{4: false}, match.Faded)
		assert.Equal(t, Tally{X: 1}, match.Shots)
		assert.Equal(t, PlayerO, match.Turn)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a match where X holds cell 0
		match := NewMatch()
		_, err := match.MakeTurn(PlayerX, 0, false)
		require.NoError(t, err)

		// When: O tries the same cell
		result, err := match.MakeTurn(PlayerO, 0, false)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Nil(t, result)
		assert.Equal(t, PlayerX, match.Board[0])
		assert.Len(t, match.Moves, 1)
		assert.Equal(t, Tally{X: 1}, match.Shots)
		assert.Equal(t, PlayerO, match.Turn)
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		match := NewMatch()

		_, err := match.MakeTurn(PlayerX, 9, false)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		_, err = match.MakeTurn(PlayerX, -1, false)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Error on unknown mark", func(t *testing.T) {
		match := NewMatch()

		_, err := match.MakeTurn("Z", 0, false)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.Equal(t, EmptyCell, match.Board[0])
	})

	t.Run("Turn is informational unless enforced", func(t *testing.T) {
		// Given: a new match where it is X's turn
		match := NewMatch()

		// When: O moves first without enforcement
		_, err := match.MakeTurn(PlayerO, 0, false)

		// Then: the move is accepted and the turn flips to X
		require.NoError(t, err)
		assert.Equal(t, PlayerX, match.Turn)

		// When: O moves again with enforcement
		_, err = match.MakeTurn(PlayerO, 1, true)

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, EmptyCell, match.Board[1])
	})
}

func TestMatch_FadeAndRemove(t *testing.T) {
	// Given: eight alternating moves on cells 0..7 that never line up
	match := NewMatch()
	cells := []int{0, 1, 2, 4, 3, 5, 7, 6}

	results := make([]*TurnResult, 0, len(cells))
	for i, cell := range cells {
		result, err := match.MakeTurn(markFor(i), cell, true)
		require.NoError(t, err)
		require.Empty(t, result.Winner)
		results = append(results, result)
	}

	// Then: nothing fades or disappears during the first six moves
	for _, result := range results[:6] {
		assert.Nil(t, result.Faded)
		assert.Nil(t, result.Removed)
	}

	// Then: the seventh move fades the oldest move
	assert.Equal(t, &Move{Index: 0, Player: PlayerX}, results[6].Faded)
	assert.Nil(t, results[6].Removed)

	// Then: the eighth move removes that same move and clears its cell
	assert.Nil(t, results[7].Faded)
	assert.Equal(t, &Move{Index: 0, Player: PlayerX}, results[7].Removed)
	assert.Equal(t, EmptyCell, match.Board[0])
	assert.NotContains(t, match.Faded, 0)
	assert.Len(t, match.Moves, 7)

	// When: a ninth move lands on the freed cell
	result, err := match.MakeTurn(PlayerX, 0, true)
	require.NoError(t, err)

	// Then: the new oldest move fades and is removed in the same step
	assert.Equal(t, &Move{Index: 1, Player: PlayerO}, result.Faded)
	assert.Equal(t, &Move{Index: 1, Player: PlayerO}, result.Removed)
	assert.Equal(t, EmptyCell, match.Board[1])
	assert.Equal(t, PlayerX, match.Board[0])
}

func TestMatch_WinningCombo(t *testing.T) {
	t.Run("Top row wins", func(t *testing.T) {
		// Given: X plays 0, 1, 2 while O plays 3, 4
		match := NewMatch()
		var result *TurnResult
		for i, cell := range []int{0, 3, 1, 4, 2} {
			var err error
			result, err = match.MakeTurn(markFor(i), cell, false)
			require.NoError(t, err)
		}

		// Then: the completing move reports the row and X as winner
		assert.Equal(t, []int{0, 1, 2}, result.WinCombo)
		assert.Equal(t, PlayerX, result.Winner)
	})

	t.Run("Faded cell never completes a win", func(t *testing.T) {
		// Given: a row of X where one cell has faded
		match := NewMatch()
		match.Board = [9]string{PlayerX, PlayerX, PlayerX}
		match.Faded = map[int]bool{0: true, 1: false, 2: false}

		// When: looking for a winning triple
		combo := match.WinningCombo()

		// Then: none is found
		assert.Nil(t, combo)
	})

	t.Run("First triple in scan order wins", func(t *testing.T) {
		// Given: X holds both the first column and the top row
		match := NewMatch()
		match.Board = [9]string{
			PlayerX, PlayerX, PlayerX,
			PlayerX, EmptyCell, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		// Then: the row, declared first, is reported
		assert.Equal(t, []int{0, 1, 2}, match.WinningCombo())
	})

	t.Run("Mixed marks do not win", func(t *testing.T) {
		match := NewMatch()
		match.Board = [9]string{PlayerX, PlayerO, PlayerX}

		assert.Nil(t, match.WinningCombo())
	})
}

func TestMatch_Reset(t *testing.T) {
	// Given: a match with moves and a recorded win
	match := NewMatch()
	_, err := match.MakeTurn(PlayerX, 0, false)
	require.NoError(t, err)
	_, err = match.MakeTurn(PlayerO, 1, false)
	require.NoError(t, err)
	match.RecordWin(PlayerO)

	// When: the match is reset
	match.Reset()

	// Then: the board is cleared, X moves first and the score survives
	assert.Equal(t, [9]string{}, match.Board)
	assert.Empty(t, match.Moves)
	assert.Empty(t, match.Faded)
	assert.Equal(t, Tally{}, match.Shots)
	assert.Equal(t, PlayerX, match.Turn)
	assert.Equal(t, Tally{O: 1}, match.Score)
}

func TestMatch_Invariants(t *testing.T) {
	// Given: a long random stream of moves, resetting after every win
	rnd := rand.New(rand.NewSource(42)) //nolint: gosec // deterministic test data
	match := NewMatch()
	fadedSeen := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		result, err := match.MakeTurn(markFor(i), rnd.Intn(9), false)
		if err != nil {
			require.ErrorIs(t, err, apperror.ErrCellOccupied)
			continue
		}

		// Then: a cell fades at most once and only then is removed
		if result.Faded != nil {
			require.False(t, fadedSeen[result.Faded.Index], "cell %d faded twice", result.Faded.Index)
			fadedSeen[result.Faded.Index] = true
		}
		if result.Removed != nil {
			require.True(t, fadedSeen[result.Removed.Index], "cell %d removed before fading", result.Removed.Index)
			delete(fadedSeen, result.Removed.Index)
		}

		// Then: the board mirrors the history and stays within the window
		require.LessOrEqual(t, len(match.Moves), 7)
		occupied := make(map[int]string)
		for _, move := range match.Moves {
			occupied[move.Index] = move.Player
		}
		for cell, mark := range match.Board {
			require.Equal(t, occupied[cell], mark, "cell %d", cell)
		}

		// Then: a reported win never includes a faded cell
		for _, cell := range result.WinCombo {
			require.False(t, match.Faded[cell])
		}

		if result.Winner != "" {
			match.Reset()
			fadedSeen = make(map[int]bool)
		}
	}
}

func TestTally_Inc(t *testing.T) {
	var tally Tally

	tally.Inc(PlayerX)
	tally.Inc(PlayerO)
	tally.Inc(PlayerO)
	tally.Inc("?")

	assert.Equal(t, Tally{X: 1, O: 2}, tally)
}

func markFor(i int) string {
	if i%2 == 0 {
		return PlayerX
	}
	return PlayerO
}
