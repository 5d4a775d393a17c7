package jobs

import (
	"context"

	"equiprent-core/internal/logger"
)

// ExpireReservations expires pending or confirmed reservations whose window has ended
func (jr *JobRunner) ExpireReservations() {
	jr.runWithRecovery("ExpireReservations", func() {
		ctx := context.Background()

		count, err := jr.services.Reservation.ExpireReservations(ctx)
		if err != nil {
			logger.Error("Failed to expire reservations", "error", err)
			return
		}

		logger.Info("Expired reservations", "count", count)
	})
}
