package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
)

var ErrRosterMismatch = errors.New("roster needs one prize per player and at least two players")

var DareTasks = []string{
	"10 push-ups", "Sing a song", "Meow three times", "Truth or dare",
	"Buy everyone a drink", "Imitate an animal", "Confess to the person on your left", "Dance",
	"Tell a joke", "20 squats", "Compliment everyone here", "Pull a face for a photo",
	"Write your name with your hips", "Spin around 10 times", "Drink a glass of water", "Shout I am a fool",
	"Take a forehead flick", "10 sit-ups", "Do your best SpongeBob", "Free pass, play again",
}

var DefaultPlayers = []string{"Alice", "Bob", "Charlie", "Dave"}

// Roster lists who plays and what can be won. Players[i] has no relation to
// Prizes[i]; the ladder decides.
type Roster struct {
	Players []string
	Prizes  []string
}

func DefaultRoster(rnd *rand.Rand) Roster {
	r := Roster{Players: append([]string(nil), DefaultPlayers...)}
	for range DefaultPlayers {
		r.Prizes = append(r.Prizes, RandomPrize(rnd))
	}
	return r
}

func RandomPrize(rnd *rand.Rand) string {
	return DareTasks[rnd.Intn(len(DareTasks))]
}

// MaxPlayers caps Resize.
const MaxPlayers = 20

// Resize grows the roster with placeholder players and random dares, or cuts it
// down to n entries. n is clamped to [2, MaxPlayers].
func (r *Roster) Resize(n int, rnd *rand.Rand) {
	if n < 2 {
		n = 2
	}
	if n > MaxPlayers {
		n = MaxPlayers
	}
	for i := len(r.Players); i < n; i++ {
		r.Players = append(r.Players, fmt.Sprintf("P%d", i+1))
	}
	for i := len(r.Prizes); i < n; i++ {
		r.Prizes = append(r.Prizes, RandomPrize(rnd))
	}
	r.Players = r.Players[:n]
	r.Prizes = r.Prizes[:n]
}

func (r Roster) Lanes() int {
	return len(r.Players)
}

func (r Roster) Validate() error {
	if len(r.Players) < 2 || len(r.Players) != len(r.Prizes) {
		return fmt.Errorf("%d players, %d prizes: %w", len(r.Players), len(r.Prizes), ErrRosterMismatch)
	}
	return nil
}

// PrizeAt returns the label under lane i, or a numbered placeholder when blank.
func (r Roster) PrizeAt(i int) string {
	if i >= 0 && i < len(r.Prizes) && strings.TrimSpace(r.Prizes[i]) != "" {
		return r.Prizes[i]
	}
	return fmt.Sprintf("Prize %d", i+1)
}

// LoadRoster reads "player | prize" lines. Blank lines and lines starting with #
// are skipped.
func LoadRoster(reader io.Reader) (Roster, error) {
	var r Roster
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		parts := strings.SplitN(s, "|", 2)
		if len(parts) != 2 {
			return Roster{}, fmt.Errorf("roster line %d: want \"player | prize\", got %q", line, s)
		}
		player := strings.TrimSpace(parts[0])
		if player == "" {
			return Roster{}, fmt.Errorf("roster line %d: empty player name", line)
		}
		r.Players = append(r.Players, player)
		r.Prizes = append(r.Prizes, strings.TrimSpace(parts[1]))
	}
	if err := scanner.Err(); err != nil {
		return Roster{}, err
	}
	if err := r.Validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}
