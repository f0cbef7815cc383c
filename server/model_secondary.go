package server

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/model"
)

// LoadRoster reads a "player | prize" file.
func LoadRoster(path string) (model.Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Roster{}, err
	}
	defer file.Close()

	r, err := model.LoadRoster(file)
	if err != nil {
		return model.Roster{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("roster %s: %d players", path, r.Lanes())
	return r, nil
}
