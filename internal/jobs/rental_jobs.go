package jobs

import (
	"context"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/utils"
)

// ReminderReport counts the outcome of one overdue reminder run
type ReminderReport struct {
	Overdue int
	Sent    int
	Skipped int
	Failed  int
}

// SendOverdueReminders emails renters whose active rental is past its end date
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		report, err := jr.sendOverdueReminders(context.Background())
		if err != nil {
			logger.Error("Failed to send overdue reminders", "error", err)
			return
		}
		logger.Info("Overdue reminders processed",
			"overdue", report.Overdue,
			"sent", report.Sent,
			"skipped", report.Skipped,
			"failed", report.Failed)
	})
}

func (jr *JobRunner) sendOverdueReminders(ctx context.Context) (ReminderReport, error) {
	var report ReminderReport
	snap, err := jr.source.Snapshot(ctx)
	if err != nil {
		return report, err
	}
	today := utils.TruncateToDate(jr.now())

	for i := range snap.Rentals {
		rt := &snap.Rentals[i]
		if !rt.IsActive() || !rt.EndDate.Before(today) {
			continue
		}
		report.Overdue++

		user := snap.FindUser(rt.UserID)
		if user == nil || !domain.IsEmail(user.ContactInfo) {
			report.Skipped++
			continue
		}
		label := rt.VehicleID
		if v := snap.FindVehicle(rt.VehicleID); v != nil {
			label = v.Label()
		}

		if err := jr.email.SendOverdueReminder(ctx, user.ContactInfo, user.Name, rt.ID, label, rt.EndDate); err != nil {
			logger.Warn("Failed to send overdue reminder", "rentalID", rt.ID, "userID", rt.UserID, "error", err)
			report.Failed++
			continue
		}
		logger.Debug("Sent overdue reminder", "rentalID", rt.ID, "userID", rt.UserID,
			"endDate", utils.FormatDate(rt.EndDate))
		report.Sent++
	}
	return report, nil
}

// LogFleetSummary logs the revenue and utilisation figures of the fleet
func (jr *JobRunner) LogFleetSummary() {
	jr.runWithRecovery("LogFleetSummary", func() {
		snap, err := jr.source.Snapshot(context.Background())
		if err != nil {
			logger.Error("Failed to load snapshot", "error", err)
			return
		}
		a := service.ComputeAnalytics(snap.Rentals)

		args := []any{
			"vehicles", len(snap.Vehicles),
			"users", len(snap.Users),
			"rentals", a.TotalRentals,
			"active", a.ActiveRentals,
			"returned", a.ReturnedRentals,
			"revenue", utils.FormatCents(a.TotalRevenueCents),
		}
		if a.MostRented != nil {
			args = append(args, "mostRented", a.MostRented.VehicleID)
		}
		if a.LeastRented != nil {
			args = append(args, "leastRented", a.LeastRented.VehicleID)
		}
		logger.Info("Fleet summary", args...)
	})
}
