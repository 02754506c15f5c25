package db

import (
	"fmt"

	"gym-buddy-bot/config"
)

// Open connects the backend selected by cfg.Store.Driver.
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		return NewMemoryStore(), nil
	case config.DriverPostgres:
		pg, err := NewPostgresDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.DriverRedis:
		r, err := NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
