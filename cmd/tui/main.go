package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/model"
	"github.com/zucenko/ghostleg/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "reading .env: %v\n", err)
	}

	// the terminal belongs to the game, logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if path := os.Getenv("GHOSTLEG_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	if lvl, err := log.ParseLevel(os.Getenv("GHOSTLEG_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	seed := time.Now().UnixNano()
	if s, err := strconv.ParseInt(os.Getenv("GHOSTLEG_SEED"), 10, 64); err == nil {
		seed = s
	}
	rnd := rand.New(rand.NewSource(seed))

	roster := model.DefaultRoster(rnd)
	if path := os.Getenv("GHOSTLEG_ROSTER"); path != "" {
		r, err := loadRoster(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "roster: %v\n", err)
			os.Exit(1)
		}
		roster = r
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	app, err := tui.NewApp(screen, roster, rnd)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if chime, err := tui.NewChime(); err != nil {
		// Non-fatal, game can run without sound
		log.Warnf("audio initialization failed: %v", err)
	} else {
		app.Chime = chime
		defer tui.CloseChime()
	}

	app.Run()
}

func loadRoster(path string) (model.Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Roster{}, err
	}
	defer file.Close()
	return model.LoadRoster(file)
}
