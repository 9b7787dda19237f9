package main

import (
	"context"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/fairdraw/backend/config"
	"github.com/fairdraw/backend/internal/client"
	"github.com/fairdraw/backend/internal/domain"
	"github.com/fairdraw/backend/internal/model"
	"github.com/fairdraw/backend/internal/repository"
	"github.com/fairdraw/backend/pkg/authenticator"
	"github.com/fairdraw/backend/pkg/router"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs

	drawRepo    repository.DrawRepository
	balanceRepo repository.BalanceRepository

	lotteryDomain domain.LotteryDomain

	settlementCaller client.SettlementCaller
	entropySource    client.EntropySource
	walletResolver   client.WalletResolver

	accessTokenEngine authenticator.TokenEngine[model.AccessToken]

	router *router.Router
	server *http.Server
}
