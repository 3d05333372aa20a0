package main

import (
	"context"
	"time"

	"dyslexibrowse/internal/bridge"
	"dyslexibrowse/internal/config"
	"dyslexibrowse/internal/database"
	"dyslexibrowse/internal/engine"
	logger "dyslexibrowse/internal/logging"
	"dyslexibrowse/internal/metrics"
	"dyslexibrowse/internal/models"
	"dyslexibrowse/internal/repository"
	"dyslexibrowse/internal/router"
	"dyslexibrowse/internal/services"

	"go.uber.org/zap"
)

func main() {
	// The logger comes up before the config so config errors have somewhere
	// to go; rotation settings use defaults until the config is loaded.
	log, err := logger.Init(logger.DefaultOptions())
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Load the assessment battery content at startup
	battery, err := models.LoadBattery("config/battery.yaml")
	if err != nil {
		log.Fatal("Failed to load assessment battery", zap.Error(err))
	}

	// The bridge queue feeds injection commands to the shell; the engine
	// writes into it through the sink interfaces.
	queue := bridge.NewQueue(log, config.Conf.Bridge.QueueLimit, config.Conf.Bridge.CommandTTL)
	bridge.NewSweeper(log, queue, 30*time.Second).Start(context.Background())
	eng := engine.New(log, queue, queue)

	tracker := metrics.NewTracker(log, repository.SessionLog{})
	gateway := services.NewGatewayClient(log, config.Conf.Gateway.BaseURL, config.Conf.Gateway.Timeout)

	r := router.Setup(log, battery, eng, queue, tracker, gateway)

	addr := "localhost:" + config.Conf.Server.Port
	log.Info("Server listening on http://" + addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
