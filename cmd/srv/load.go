package main

import (
	"github.com/ethereum/go-ethereum/rpc"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/fairdraw/backend/internal/client"
	"github.com/fairdraw/backend/internal/domain"
	"github.com/fairdraw/backend/internal/domain/prize"
	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/internal/model"
	"github.com/fairdraw/backend/internal/repository"
	"github.com/fairdraw/backend/pkg/authenticator"
	"github.com/fairdraw/backend/pkg/logger"
	"github.com/fairdraw/backend/pkg/xcontext"
)

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.drawRepo = repository.NewDrawRepository()
	s.balanceRepo = repository.NewBalanceRepository()
}

func (s *srv) loadClients() {
	settlementClient, err := rpc.DialContext(s.ctx, s.configs.Chain.SettlementRPC)
	if err != nil {
		panic(err)
	}

	s.settlementCaller = client.NewSettlementCaller(settlementClient)
	s.walletResolver = client.NewWalletResolver(settlementClient)
	s.entropySource = client.NewBlockEntropy(s.configs.Chain.Rpcs[0])
}

func (s *srv) loadDomains() {
	s.lotteryDomain = domain.NewLotteryDomain(
		s.drawRepo,
		s.balanceRepo,
		prize.DefaultTable,
		s.settlementCaller,
		s.entropySource,
		s.walletResolver,
	)
}

func (s *srv) loadTokenEngine() {
	s.accessTokenEngine = authenticator.NewTokenEngine[model.AccessToken](s.configs.Token)
}
