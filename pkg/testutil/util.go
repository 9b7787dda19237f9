package testutil

import (
	"context"
	"time"

	"github.com/fairdraw/backend/config"
	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/pkg/logger"
	"github.com/fairdraw/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// The in-memory database lives in a single connection; a second pooled
	// connection would see an empty database. Capping the pool also keeps
	// concurrent test transactions from tripping sqlite's write lock.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "test",
		Lottery: config.LotteryConfigs{
			DrawDuration: time.Hour,
			TicketPrices: map[string]uint64{
				"gems":  100,
				"coins": 2500,
			},
		},
		Chain: config.ChainConfigs{
			Chain:                 "eth",
			RPCName:               "lottery",
			ConfirmTimeoutSeconds: 5,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
