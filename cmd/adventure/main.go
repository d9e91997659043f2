package main

import (
	"context"

	"github.com/pixil98/go-adventure/cmd/adventure/command"
	"github.com/pixil98/go-service"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	// Quitting from the console cancels ctx, which stops every worker.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	app, err := service.NewApp(&command.Config{}, command.WorkerBuilder(stop))
	if err != nil {
		logger.WithError(err).Fatal("creating application")
	}

	err = app.Run(ctx)
	if err != nil {
		logger.WithError(err).Fatal("running application")
	}

	logger.Info("exiting")
}
