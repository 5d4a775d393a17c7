package jobs

import (
	"context"

	"equiprent-core/internal/logger"
)

// MarkOverdueRentals marks rentals as OVERDUE if they are past their period end
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		count, err := jr.services.Rental.MarkOverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}
