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
	"github.com/rs/zerolog/log"
)

func main() {
	c := config.Load()
	config.ConfigureLogger(c)
	log.Info().Msg("Initializing blog...")

	// posts live only as long as this process
	currentDB := database.NewInMemory()

	server, err := api.NewBlogServer(currentDB.PostStore(), c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	errChannel := make(chan error)

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(time.Duration(config.GetInt(c, "SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
