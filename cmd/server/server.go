package main

import (
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/model"
	"github.com/zucenko/ghostleg/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("reading .env: %v", err)
	}
	if lvl, err := log.ParseLevel(os.Getenv("GHOSTLEG_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	roster := model.DefaultRoster(rand.New(rand.NewSource(time.Now().UnixNano())))
	if path := os.Getenv("GHOSTLEG_ROSTER"); path != "" {
		r, err := server.LoadRoster(path)
		if err != nil {
			log.Fatalf("roster: %v", err)
		}
		roster = r
	}

	Server := Server{
		GameServer: server.NewGameServer(roster),
	}
	go Server.GameServer.Loop()
	Server.routes()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, Server.router))
}
