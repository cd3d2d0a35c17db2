package main

import (
	"os"
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/api"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/config"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/constants"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/live"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/logging"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/service"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})
	// Load the game configuration file (required). Path may be provided via
	// SOW_CONFIG env var or defaults to ./soldiers_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./soldiers_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": configPath, "hint": "create a soldiers_config.json with a 'market_list' array of market objects (key,name,base_return{min,max},modifiers per cycle,risk,sensitivity) and optional keys: server.address, event_weights, starting_soldiers, total_weeks, moves_timeout_seconds, week_duration_seconds"})
	}

	// Allow the DB path to be configured via SOW_DB. Default to a `data/`
	// directory inside the backend module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/soldiers.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	// Open lobbies stop showing in the public list after a day.
	repo := storage.NewSQLiteRepository(db, 24*time.Hour)

	hub := live.NewHub()
	go hub.Run()

	opts := service.Options{
		Markets:          cfg.Markets,
		EventWeights:     cfg.EventWeights,
		MovesTimeout:     cfg.MovesTimeout,
		StartingSoldiers: cfg.StartingSoldiers,
		TotalWeeks:       cfg.TotalWeeks,
		Notify:           hub.Broadcast,
	}

	// Background scanners: auto-hold players who miss the moves deadline and
	// advance the economy for games with auto-simulation enabled.
	service.StartBackgroundScanners(repo, opts, cfg.WeekDuration, 5*time.Second)

	handler := api.NewGameHandler(repo, opts, hub)
	authHandler := api.NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteMarkets, handler.ListMarkets)
		apiRoutes.GET(constants.RoutePublicGames, handler.ListPublicGames)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
		protected.POST(constants.RouteGames, handler.CreateGame)
		protected.POST(constants.RouteGamesJoin, handler.JoinGame)
		protected.GET(constants.RouteGameByID, handler.GetGame)
		protected.POST(constants.RouteGameStart, handler.StartGame)
		protected.POST(constants.RouteGameEnd, handler.EndGame)
		protected.POST(constants.RouteGameLeave, handler.LeaveGame)
		protected.POST(constants.RouteGameMoves, handler.SubmitMoves)
		protected.GET(constants.RouteGameMoves, handler.GetWeekMoves)
		protected.GET(constants.RouteGameEconomy, handler.GetEconomy)
		protected.GET(constants.RouteGameEconomyHistory, handler.GetEconomyHistory)
		protected.POST(constants.RouteGameEconomyCycle, handler.SetCycle)
		protected.POST(constants.RouteGameEconomyEvent, handler.TriggerRandomEvent)
		protected.POST(constants.RouteGameEconomyAutoSim, handler.ToggleAutoSimulation)
		protected.GET(constants.RouteGamePreview, handler.PreviewReturns)
		protected.GET(constants.RouteGameLive, handler.LiveFeed)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	// Start server on configured address
	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
