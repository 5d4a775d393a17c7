package jobs

import (
	"context"

	"equiprent-core/internal/logger"
)

// ScanMaintenanceDue reports equipment that is due for maintenance
func (jr *JobRunner) ScanMaintenanceDue() {
	jr.runWithRecovery("ScanMaintenanceDue", func() {
		ctx := context.Background()

		due, err := jr.services.Equipment.ListNeedingMaintenance(ctx)
		if err != nil {
			logger.Error("Failed to scan for maintenance", "error", err)
			return
		}

		for _, equipment := range due {
			logger.Warn("Equipment needs maintenance",
				"equipment_id", equipment.ID(),
				"name", equipment.Name(),
				"last_maintenance", equipment.LastMaintenanceAt())
		}

		logger.Info("Maintenance scan completed", "due_count", len(due))
	})
}
