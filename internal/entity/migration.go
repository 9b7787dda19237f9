package entity

import (
	"context"

	"github.com/fairdraw/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Draw{},
		&Ticket{},
		&Winner{},
		&Balance{},
	)
}
