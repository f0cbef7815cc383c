package main

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/model"
)

const rosterFile = "data/roster.txt"

// Load reads the roster shipped next to the binary, falling back to the default
// players with random dares.
func Load(rnd *rand.Rand) model.Roster {
	file, err := ebitenutil.OpenFile(rosterFile)
	if err != nil {
		log.Infof("no %s, using default roster", rosterFile)
		return model.DefaultRoster(rnd)
	}
	defer file.Close()

	r, err := model.LoadRoster(file)
	if err != nil {
		log.Warnf("failed reading %s: %v", rosterFile, err)
		return model.DefaultRoster(rnd)
	}
	return r
}
