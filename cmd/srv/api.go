package main

import (
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/fairdraw/backend/internal/middleware"
	"github.com/fairdraw/backend/pkg/router"
	"github.com/fairdraw/backend/pkg/xcontext"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()
	s.loadClients()
	s.loadDomains()
	s.loadTokenEngine()
	s.loadRouter()

	defer s.settlementCaller.Close()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)

	// Public API: anyone can audit a draw.
	router.GET(s.router, "/getDraw", s.lotteryDomain.GetDraw)
	router.POST(s.router, "/verifyWinningNumbers", s.lotteryDomain.VerifyWinningNumbers)

	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate(s.accessTokenEngine))
	{
		router.POST(authRouter, "/buyTicket", s.lotteryDomain.BuyTicket)
		router.POST(authRouter, "/claimWinnings", s.lotteryDomain.ClaimWinnings)
		router.GET(authRouter, "/getWinner", s.lotteryDomain.GetWinner)
	}
}
