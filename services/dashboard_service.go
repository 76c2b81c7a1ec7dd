package services

import (
	"context"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
)

const dashboardListLimit = 10

// DashboardService is a read-only aggregate over the other services.
type DashboardService struct {
	Tasks     *TaskService
	Inventory *InventoryService
	Finance   *FinanceService
	Bookings  *BookingService
	Rooms     *RoomService
	Now       func() time.Time
}

func NewDashboardService(tasks *TaskService, inv *InventoryService, fin *FinanceService, bookings *BookingService, rooms *RoomService) *DashboardService {
	return &DashboardService{
		Tasks:     tasks,
		Inventory: inv,
		Finance:   fin,
		Bookings:  bookings,
		Rooms:     rooms,
		Now:       time.Now,
	}
}

type Dashboard struct {
	Date            models.Date            `json:"date"`
	TodaysTasks     []models.Task          `json:"todays_tasks"`
	RestockAlerts   []models.InventoryItem `json:"restock_alerts"`
	MonthlySummary  models.MonthSummary    `json:"monthly_summary"`
	TodaysCheckIns  []models.Booking       `json:"todays_checkins"`
	TodaysCheckOuts []models.Booking       `json:"todays_checkouts"`
	RoomCounts
}

// Build assembles the API dashboard for today. With page set, tasks are
// every pending task due today or earlier and nothing is truncated.
func (s *DashboardService) Build(ctx context.Context, page bool) (*Dashboard, error) {
	now := s.Now()
	today := models.DateOf(now)
	limit := dashboardListLimit
	if page {
		limit = 0
	}

	tasks, err := s.Tasks.PendingDue(ctx, today, page, limit)
	if err != nil {
		return nil, err
	}
	alerts, err := s.Inventory.LowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	summary, err := s.Finance.MonthlySummary(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	checkIns, err := s.Bookings.ArrivalsOn(ctx, today, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	checkOuts, err := s.Bookings.DeparturesOn(ctx, today, models.BookingCheckedIn)
	if err != nil {
		return nil, err
	}
	counts, err := s.Rooms.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Date:            today,
		TodaysTasks:     tasks,
		RestockAlerts:   alerts,
		MonthlySummary:  summary,
		TodaysCheckIns:  checkIns,
		TodaysCheckOuts: checkOuts,
		RoomCounts:      counts,
	}, nil
}
