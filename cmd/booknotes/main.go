package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/readinglog/api"
	"github.com/rpupo63/readinglog/config"
	"github.com/rpupo63/readinglog/database"
	"github.com/rpupo63/readinglog/models"
	"github.com/rpupo63/readinglog/services"
	"github.com/rs/zerolog/log"
)

func main() {
	c := config.Load()
	config.ConfigureLogger(c)
	log.Info().Msg("Initializing book notes...")

	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating books table")
		}
		log.Info().Msg("books table migrated")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating query helpers...")
		if err := models.GenerateQueries(db, config.GetString(c, "GENERATE_MODELS_OUT", "./query"), os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("Error generating query helpers")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if err := models.GenerateColumnMismatchReport(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("Error generating column mismatch report")
		}
		return
	}

	currentDB := database.New(db)
	catalog := services.NewOpenLibraryFromConfig(c)

	server, err := api.NewBookServer(currentDB.BookRepo(), catalog, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	errChannel := make(chan error)

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(time.Duration(config.GetInt(c, "SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second)

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
