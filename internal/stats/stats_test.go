package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
)

func TestRecordStarted(t *testing.T) {
	var c Counters
	c.RecordStarted(game.DifficultyEasy)
	c.RecordStarted(game.DifficultyMedium)
	c.RecordStarted(game.DifficultyMedium)
	c.RecordStarted(game.DifficultyHard)

	assert.Equal(t, 4, c.GamesStarted)
	assert.Equal(t, 1, c.EasyStarted)
	assert.Equal(t, 2, c.MediumStarted)
	assert.Equal(t, 1, c.HardStarted)
}

func TestRecordOutcomeWinsAndStreaks(t *testing.T) {
	var c Counters

	c.RecordOutcome(game.DifficultyMedium, true, 5)
	c.RecordOutcome(game.DifficultyMedium, true, 3)
	require.NotNil(t, c.FastestWinAttempts)
	assert.Equal(t, 3, *c.FastestWinAttempts)
	assert.Equal(t, 2, c.GamesWon)
	assert.Equal(t, 2, c.MediumWon)
	assert.Equal(t, 2, c.CurrentStreak)
	assert.Equal(t, 2, c.BestStreak)
	assert.Equal(t, 8, c.TotalGuessesInWins)

	// A loss breaks the streak but not the best streak.
	c.RecordOutcome(game.DifficultyEasy, false, 8)
	assert.Equal(t, 1, c.GamesLost)
	assert.Equal(t, 0, c.CurrentStreak)
	assert.Equal(t, 2, c.BestStreak)

	// A slower win must not lower the fastest mark.
	c.RecordOutcome(game.DifficultyHard, true, 10)
	assert.Equal(t, 3, *c.FastestWinAttempts)
	assert.Equal(t, 1, c.HardWon)
	assert.Equal(t, 1, c.CurrentStreak)
}

func TestSnapshotDerivesAverage(t *testing.T) {
	var c Counters

	snap := c.Snapshot()
	assert.Nil(t, snap.AverageGuessesToWin, "undefined before any win")
	assert.Nil(t, snap.FastestWinAttempts)

	c.RecordOutcome(game.DifficultyMedium, true, 4)
	c.RecordOutcome(game.DifficultyMedium, true, 6)
	snap = c.Snapshot()
	require.NotNil(t, snap.AverageGuessesToWin)
	assert.InDelta(t, 5.0, *snap.AverageGuessesToWin, 1e-9)

	// Snapshot must be detached from the live counters.
	*snap.FastestWinAttempts = 99
	assert.Equal(t, 4, *c.FastestWinAttempts)
}

func TestReset(t *testing.T) {
	var c Counters
	c.RecordStarted(game.DifficultyHard)
	c.RecordOutcome(game.DifficultyHard, true, 2)

	c.Reset()
	assert.Equal(t, Counters{}, c)
	assert.Nil(t, c.FastestWinAttempts)
}

func TestScoreboardConcurrentRecording(t *testing.T) {
	sb := NewScoreboard()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sb.RecordStarted(game.DifficultyMedium)
			sb.RecordOutcome(game.DifficultyMedium, true, 4)
		}()
	}
	wg.Wait()

	snap := sb.Snapshot()
	assert.Equal(t, 50, snap.GamesStarted)
	assert.Equal(t, 50, snap.GamesWon)
	assert.Equal(t, 200, snap.TotalGuessesInWins)
	assert.Equal(t, 50, snap.BestStreak)
}
