package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/auth"
	"github.com/peertutor/peertutor/core/rating"
	"github.com/peertutor/peertutor/core/session"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
	logsvc "github.com/peertutor/peertutor/services/logger"
	"github.com/peertutor/peertutor/services/rest"
)

func main() {
	std := log.New(os.Stderr, "", log.LstdFlags)

	// report to rollbar outside DEV|TEST mode
	var logger core.Logger
	if core.Conf.Debug || core.Conf.TestMode || core.Conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	client := rest.NewClient(core.Conf, logger)

	cli := &commandLine{
		out:      os.Stdout,
		log:      logger,
		backend:  client,
		auth:     auth.NewService(client, client, client),
		users:    user.NewService(client),
		students: student.NewService(client),
		subjects: subject.NewService(client),
		tutors:   tutor.NewService(client),
		sessions: session.NewService(client),
		ratings:  rating.NewService(client, client),
	}

	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, errmsg(err))
		os.Exit(1)
	}
}
