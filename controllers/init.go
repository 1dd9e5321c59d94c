package controllers

import (
	"vidquest/db"
	"vidquest/engagement"
	"vidquest/services"
)

var (
	stores       *db.Stores
	gamification *services.GamificationService
	materials    *services.MaterialsService
	sessions     *engagement.Manager
)

// InitControllers wires the shared services the handlers use. Call once
// at startup after the database connections are up.
func InitControllers(s *db.Stores) {
	stores = s
	gamification = services.NewGamificationService(s, nil)
	materials = services.NewMaterialsService(s)
	sessions = engagement.NewManager(nil)
}

// SessionManager exposes the watch-session registry for the stale
// sweeper in main.
func SessionManager() *engagement.Manager {
	return sessions
}
