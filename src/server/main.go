package main

import (
	"github.com/apex/log"

	"github.com/voxsplit/voxsplit-be/src/server/internal/application"
)

const serverAddress = ":5000"

func main() {
	app, err := application.NewApp()
	if err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	err = app.Start(serverAddress)
	if err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
