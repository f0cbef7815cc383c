package server

import (
	"bytes"
	"encoding/gob"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/ghostleg/board"
	"github.com/zucenko/ghostleg/model"
)

var testRoster = model.Roster{
	Players: []string{"Alice", "Bob", "Charlie", "Dave"},
	Prizes:  []string{"p0", "p1", "p2", "p3"},
}

// fakeNow moves a quarter second forward on every call.
func fakeNow() func() time.Time {
	var mu sync.Mutex
	now := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(250 * time.Millisecond)
		return now
	}
}

func newTestServer() *GameServer {
	s := NewGameServer(testRoster)
	s.Now = fakeNow()
	s.TickEvery = 2 * time.Millisecond
	s.Seed = func() int64 { return 1 }
	return s
}

func TestTurn(t *testing.T) {
	s := newTestServer()
	gs, err := s.newSession(nil)
	require.NoError(t, err)

	lane := 1
	assert.False(t, gs.Turn(model.ClientMessage{SelectLane: &lane}))
	p, ok := gs.Board.Assignment(1)
	assert.True(t, ok)
	assert.Equal(t, "Alice", p)

	gs.Board.Advance(board.Duration)
	require.Len(t, gs.results, 1)
	assert.Equal(t, "Alice", gs.results[0].Player)

	gs.pushFrame()
	mes := <-gs.MessagesToSend
	require.NotNil(t, mes.Frame)
	assert.Len(t, mes.Results, 1)
	assert.Empty(t, gs.results, "results go out once")

	assert.False(t, gs.Turn(model.ClientMessage{AddBridge: &model.Click{X: 180, Y: 1}}))
	assert.Empty(t, gs.Board.UserBridges(), "row 0 is off the ladder")

	assert.False(t, gs.Turn(model.ClientMessage{ResetGame: true}))
	assert.Len(t, gs.Board.Queue(), 4)

	old := gs.Board.Ladder
	assert.True(t, gs.Turn(model.ClientMessage{Regenerate: true}))
	assert.NotSame(t, old, gs.Board.Ladder)

	bad := model.Roster{Players: []string{"solo"}, Prizes: []string{"x"}}
	assert.False(t, gs.Turn(model.ClientMessage{NewGame: &model.NewGame{Roster: bad}}))
	assert.Equal(t, 4, gs.Board.Ladder.Lanes)
}

func TestSendKeepsResultsWhenQueueFull(t *testing.T) {
	s := newTestServer()
	gs, err := s.newSession(nil)
	require.NoError(t, err)
	for i := 0; i < cap(gs.MessagesToSend); i++ {
		gs.pushFrame()
	}
	gs.collect(model.Result{Player: "Alice"})
	gs.pushFrame()
	assert.Equal(t, 1, gs.DebugDropped)
	assert.Len(t, gs.results, 1)
}

func readMessage(t *testing.T, con *websocket.Conn) model.ServerMessage {
	t.Helper()
	require.NoError(t, con.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, r, err := con.NextReader()
	require.NoError(t, err)
	mes := model.ServerMessage{}
	require.NoError(t, gob.NewDecoder(r).Decode(&mes))
	return mes
}

func writeMessage(t *testing.T, con *websocket.Conn, cm model.ClientMessage) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(cm))
	require.NoError(t, con.WriteMessage(websocket.BinaryMessage, buf.Bytes()))
}

func TestPlayOverWebsocket(t *testing.T) {
	s := newTestServer()
	go s.Loop()
	srv := httptest.NewServer(s.HandleHttpCall())
	defer srv.Close()

	con, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer con.Close()

	setup := readMessage(t, con)
	require.NotNil(t, setup.Setup)
	assert.NotEmpty(t, setup.Setup.SessionId)
	assert.Equal(t, 4, setup.Setup.Lanes)
	assert.Equal(t, testRoster, setup.Setup.Roster)
	require.NotNil(t, setup.Frame)
	assert.Equal(t, "Alice", setup.Frame.CurrentPlayer)

	lane := 2
	writeMessage(t, con, model.ClientMessage{SelectLane: &lane})

	var results []model.Result
	for len(results) == 0 {
		mes := readMessage(t, con)
		require.NotNil(t, mes.Frame)
		results = mes.Results
	}
	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, "Alice", res.Player)
	assert.Equal(t, 2, res.Lane)
	assert.Equal(t, testRoster.PrizeAt(res.EndLane), res.Prize)

	three := model.Roster{Players: []string{"x", "y", "z"}, Prizes: []string{"a", "b", "c"}}
	writeMessage(t, con, model.ClientMessage{NewGame: &model.NewGame{Roster: three, Seed: 9}})
	for {
		mes := readMessage(t, con)
		if mes.Setup != nil {
			assert.Equal(t, 3, mes.Setup.Lanes)
			assert.Equal(t, "x", mes.Frame.CurrentPlayer)
			break
		}
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Health()(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 200, rec.Code)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "GS_PLAY", GS_PLAY.Name())
	assert.Equal(t, "n/a:9", GameSessionState(9).Name())
	assert.Equal(t, HTTP_SERVER_ERR, GAME_INVALIDE.ToHttp())
}
