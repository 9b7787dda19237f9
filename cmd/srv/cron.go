package main

import (
	"github.com/urfave/cli/v2"

	"github.com/fairdraw/backend/internal/domain/cron"
)

func (s *srv) startScheduler(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()
	s.loadClients()
	s.loadDomains()

	defer s.settlementCaller.Close()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewDrawScheduleCronJob(s.lotteryDomain, s.drawRepo))
	cronJobManager.Start(s.ctx)

	return nil
}
