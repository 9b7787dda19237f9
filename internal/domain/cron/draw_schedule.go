package cron

import (
	"context"
	"errors"
	"time"

	"github.com/fairdraw/backend/internal/domain"
	"github.com/fairdraw/backend/internal/model"
	"github.com/fairdraw/backend/internal/repository"
	"github.com/fairdraw/backend/pkg/errorx"
	"github.com/fairdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// DrawScheduleCronJob keeps the lottery running: it finalizes the open draw
// once its deadline passes and opens a new draw when none is open. Both
// operations are idempotent, so overlapping runs on several instances are
// harmless.
type DrawScheduleCronJob struct {
	lotteryDomain domain.LotteryDomain
	drawRepo      repository.DrawRepository
}

func NewDrawScheduleCronJob(
	lotteryDomain domain.LotteryDomain,
	drawRepo repository.DrawRepository,
) *DrawScheduleCronJob {
	return &DrawScheduleCronJob{
		lotteryDomain: lotteryDomain,
		drawRepo:      drawRepo,
	}
}

func (job *DrawScheduleCronJob) Do(ctx context.Context) {
	draw, err := job.drawRepo.GetOpenDraw(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the open draw: %v", err)
		return
	}

	if err == nil {
		if draw.FinalizeAt.After(time.Now()) {
			return
		}

		resp, err := job.lotteryDomain.FinalizeDraw(ctx, &model.FinalizeDrawRequest{})
		if err != nil {
			// A failed settlement call leaves the draw finalizable; the next
			// tick retries with identical, already-committed seeds.
			xcontext.Logger(ctx).Errorf("Cannot finalize draw %d: %v", draw.ID, err)
			return
		}

		xcontext.Logger(ctx).Infof("Finalized draw %d with root %s", resp.DrawID, resp.MerkleRoot)
	}

	resp, err := job.lotteryDomain.StartDraw(ctx, &model.StartDrawRequest{})
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) && errx.Code == errorx.AlreadyExists {
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot start a new draw: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Opened draw %d", resp.DrawID)
}

func (job *DrawScheduleCronJob) RunNow() bool {
	return true
}

func (job *DrawScheduleCronJob) Next() time.Time {
	return time.Now().Add(30 * time.Second)
}
