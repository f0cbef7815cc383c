package server

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/board"
	"github.com/zucenko/ghostleg/model"
)

// GameServer hands every websocket connection its own board. Sessions never
// share state.
type GameServer struct {
	GameSessions map[uuid.UUID]*GameSession
	GameRequests chan GameRequest
	Closed       chan uuid.UUID
	Upgrader     *websocket.Upgrader

	// Roster seeds new sessions until the client sends its own.
	Roster    model.Roster
	TickEvery time.Duration
	Now       func() time.Time
	Seed      func() int64
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

type GameSession struct {
	Id    uuid.UUID
	State GameSessionState
	Board *board.Board
	Conn  *websocket.Conn

	GameOver       chan struct{}
	Events         chan model.ClientMessage
	Errors         chan error
	MessagesToSend chan model.ServerMessage

	rnd       *rand.Rand
	clock     *anim.Clock
	tickEvery time.Duration
	results   []model.Result

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
}
