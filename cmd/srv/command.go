package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "fairdraw"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Category:    "Api",
			Description: `Serves the public draw, purchase and claim endpoints.`,
		},
		{
			Action:      server.startScheduler,
			Name:        "scheduler",
			Usage:       "Start the draw scheduler",
			Category:    "Worker",
			Description: `Runs the cron jobs that open and finalize draws on schedule.`,
		},
	}

	s.app = app
}
