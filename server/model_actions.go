package server

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/board"
	"github.com/zucenko/ghostleg/model"
)

const DefaultTickEvery = 16 * time.Millisecond

func NewGameServer(roster model.Roster) *GameServer {
	return &GameServer{
		GameSessions: make(map[uuid.UUID]*GameSession),
		GameRequests: make(chan GameRequest),
		Closed:       make(chan uuid.UUID),
		Upgrader:     &websocket.Upgrader{},
		Roster:       roster,
		TickEvery:    DefaultTickEvery,
		Now:          time.Now,
		Seed:         func() int64 { return time.Now().UnixNano() },
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the request
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{Con: con, GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			return
		}
		if gca.ResponseCode != GAME_READY {
			log.Warnf("HandleHttpCall no session, code:%d", gca.ResponseCode.ToHttp())
			return
		}

		gs := gca.GameSession
		log.Infof("HandleHttpCall session %s playing", gs.Id)
		<-gs.GameOver
		s.Closed <- gs.Id
	}
}

func (s *GameServer) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(HTTP_SUCCESS)
	}
}

// Loop owns the session registry.
func (s *GameServer) Loop() {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case gameReq := <-s.GameRequests:
			gs, err := s.newSession(gameReq.Con)
			if err != nil {
				log.Errorf("create GameSession: %v", err)
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_INVALIDE}
				continue
			}
			s.GameSessions[gs.Id] = gs
			go gs.Loop()
			go gs.LoopChannelRead()
			go gs.LoopChannelWrite()
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case id := <-s.Closed:
			log.Infof("GameServer.Loop session %s closed", id)
			delete(s.GameSessions, id)
		}
	}
}

func (s *GameServer) newSession(con *websocket.Conn) (*GameSession, error) {
	rnd := rand.New(rand.NewSource(s.Seed()))
	b, err := newBoard(s.Roster, rnd)
	if err != nil {
		return nil, err
	}
	gs := &GameSession{
		Id:             uuid.New(),
		State:          GS_NEW,
		Board:          b,
		Conn:           con,
		GameOver:       make(chan struct{}),
		Events:         make(chan model.ClientMessage, 10),
		Errors:         make(chan error, 1),
		MessagesToSend: make(chan model.ServerMessage, 10),
		rnd:            rnd,
		clock:          anim.NewClock(s.Now),
		tickEvery:      s.TickEvery,
	}
	gs.Board.OnFinish = gs.collect
	return gs, nil
}

func newBoard(roster model.Roster, rnd *rand.Rand) (*board.Board, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	ladder, err := model.NewLadder(roster.Lanes(), rnd)
	if err != nil {
		return nil, err
	}
	return board.New(ladder, roster, model.NewLayout(ladder.Lanes, ladder.Height))
}

// Loop serialises every change to the session's board: client commands and
// animation ticks.
func (gs *GameSession) Loop() {
	log.Infof("GameSession.Loop %s start", gs.Id)
	ticker := time.NewTicker(gs.tickEvery)
	defer ticker.Stop()

	gs.State = GS_PLAY
	gs.send(setupMessage(gs))
	for {
		select {
		case cm := <-gs.Events:
			if gs.Turn(cm) {
				gs.send(setupMessage(gs))
			} else {
				gs.pushFrame()
			}
		case err := <-gs.Errors:
			log.Infof("GameSession.Loop %s over: %v", gs.Id, err)
			gs.State = GS_OVER
			close(gs.GameOver)
			return
		case <-ticker.C:
			dt := gs.clock.Step()
			if gs.Board.Busy() {
				gs.Board.Advance(dt)
				gs.pushFrame()
			}
		}
	}
}

// Turn applies one client command. It reports whether the board was replaced
// and the client needs a fresh setup.
func (gs *GameSession) Turn(cm model.ClientMessage) bool {
	b := gs.Board
	switch {
	case cm.NewGame != nil:
		rnd := rand.New(rand.NewSource(cm.NewGame.Seed))
		if cm.NewGame.Seed == 0 {
			rnd = gs.rnd
		}
		nb, err := newBoard(cm.NewGame.Roster, rnd)
		if err != nil {
			log.Warnf("GameSession %s NewGame ignored: %v", gs.Id, err)
			return false
		}
		nb.OnFinish = gs.collect
		gs.Board = nb
		gs.rnd = rnd
		gs.results = nil
		return true
	case cm.SelectLane != nil:
		b.SelectLane(*cm.SelectLane)
	case cm.AddBridge != nil:
		b.AddUserBridgeAt(cm.AddBridge.X, cm.AddBridge.Y)
	case cm.ResetBridges:
		b.ResetUserBridges()
	case cm.ResetGame:
		b.ResetGame()
		gs.results = nil
	case cm.Regenerate:
		ladder, err := model.NewLadder(b.Ladder.Lanes, gs.rnd)
		if err == nil {
			err = b.NewRound(ladder)
		}
		if err != nil {
			log.Warnf("GameSession %s Regenerate: %v", gs.Id, err)
			return false
		}
		gs.results = nil
		return true
	}
	return false
}

func (gs *GameSession) collect(r model.Result) {
	gs.results = append(gs.results, r)
}

func (gs *GameSession) pushFrame() {
	f := gs.Board.Frame()
	gs.send(model.ServerMessage{Frame: &f})
}

// send queues a message together with any pending results. A full queue drops
// the frame but keeps the results for the next one.
func (gs *GameSession) send(mes model.ServerMessage) {
	mes.Results = gs.results
	select {
	case gs.MessagesToSend <- mes:
		gs.results = nil
	default:
		gs.DebugDropped++
		log.Debugf("GameSession %s dropping frame, writer is behind", gs.Id)
	}
}

func (gs *GameSession) fail(err error) {
	select {
	case gs.Errors <- err:
	default:
	}
}

func (gs *GameSession) LoopChannelRead() {
	log.Printf("LoopChannelRead %s STARTED", gs.Id)
	for {
		_, r, err := gs.Conn.NextReader()
		if err != nil {
			gs.fail(fmt.Errorf("read: %w", err))
			break
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead %s cant decode: %v", gs.Id, err)
			gs.fail(fmt.Errorf("decode: %w", err))
			break
		}
		gs.DebugInMessages++
		gs.DebugLastMessage = time.Now()

		select {
		case gs.Events <- cm:
		case <-gs.GameOver:
			return
		}
	}
	log.Printf("LoopChannelRead %s ENDED", gs.Id)
}

func (gs *GameSession) LoopChannelWrite() {
	log.Printf("LoopChannelWrite %s STARTED", gs.Id)
	for {
		select {
		case mes := <-gs.MessagesToSend:
			if err := gs.write(mes); err != nil {
				log.Warnf("LoopChannelWrite %s: %v", gs.Id, err)
				gs.fail(err)
				return
			}
			gs.DebugOutMessages++
		case <-gs.GameOver:
			log.Printf("LoopChannelWrite %s ENDED", gs.Id)
			return
		}
	}
}

func (gs *GameSession) write(mes model.ServerMessage) error {
	w, err := gs.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return fmt.Errorf("cant get writer: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		return fmt.Errorf("cant encode: %w", err)
	}
	return w.Close()
}
