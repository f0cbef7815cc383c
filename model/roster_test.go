package model

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoster(t *testing.T) {
	data := `
# friday night
Alice | Sing a song
Bob|10 push-ups

Carol |
`
	r, err := LoadRoster(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, r.Players)
	assert.Equal(t, []string{"Sing a song", "10 push-ups", ""}, r.Prizes)
	assert.Equal(t, "Prize 3", r.PrizeAt(2))
	assert.Equal(t, 3, r.Lanes())
}

func TestLoadRosterErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing separator", "Alice | a\nBob\n"},
		{"empty player", "Alice | a\n | b\n"},
		{"single player", "Alice | a\n"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRoster(strings.NewReader(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestRosterResize(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	r := DefaultRoster(rnd)
	require.NoError(t, r.Validate())

	r.Resize(6, rnd)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie", "Dave", "P5", "P6"}, r.Players)
	require.Len(t, r.Prizes, 6)
	for _, p := range r.Prizes {
		assert.Contains(t, DareTasks, p)
	}

	r.Resize(3, rnd)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, r.Players)
	assert.Len(t, r.Prizes, 3)

	r.Resize(1, rnd)
	assert.Len(t, r.Players, 2)

	r.Resize(99, rnd)
	assert.Len(t, r.Players, MaxPlayers)
	assert.Len(t, r.Prizes, MaxPlayers)
}

func TestRosterValidate(t *testing.T) {
	err := Roster{Players: []string{"a", "b"}, Prizes: []string{"x"}}.Validate()
	assert.ErrorIs(t, err, ErrRosterMismatch)
	assert.Equal(t, "Prize 1", Roster{}.PrizeAt(0))
}
