package server

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/zucenko/ghostleg/model"
)

const HTTP_SUCCESS = 200
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_INVALIDE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case GAME_READY:
		return HTTP_SUCCESS
	case GAME_INVALIDE:
		return HTTP_SERVER_ERR
	default:
		panic(h)
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_ERR:
		return "GS_ERR"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
}

type GameRequest struct {
	Con                 *websocket.Conn
	GameContextAwaiting chan GameContextAwaiting
}

// setupMessage describes the board a session is playing on.
func setupMessage(gs *GameSession) model.ServerMessage {
	b := gs.Board
	f := b.Frame()
	return model.ServerMessage{
		Setup: &model.Setup{
			SessionId: gs.Id.String(),
			Lanes:     b.Ladder.Lanes,
			Height:    b.Ladder.Height,
			Width:     b.Layout.Width,
			Canvas:    b.Layout.CanvasHeight,
			Roster:    b.Roster,
		},
		Frame: &f,
	}
}
