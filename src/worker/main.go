package main

import (
	"github.com/apex/log"

	"github.com/voxsplit/voxsplit-be/src/worker/internal/application"
)

func main() {
	app, err := application.NewApp()
	if err != nil {
		log.WithError(err).Fatal("Failed to start worker")
	}

	app.Start()
}
