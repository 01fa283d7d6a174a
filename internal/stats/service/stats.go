package service

import (
	"context"
	"time"

	"photobox/pkg/config"
	"photobox/pkg/model"
)

type Store interface {
	ListAll() []model.Booking
}

// Summary is the admin dashboard snapshot.
type Summary struct {
	Date           string         `json:"date"`
	TodayBookings  int            `json:"todayBookings"`
	PendingCount   int            `json:"pendingCount"`
	ConfirmedCount int            `json:"confirmedCount"`
	MonthRevenue   int            `json:"monthRevenue"`
	RecentNoShows  int            `json:"recentNoShows"`
	PackageCounts  map[string]int `json:"packageCounts"`
}

type StatsService interface {
	Summary(ctx context.Context, now time.Time) Summary
}

type statsService struct {
	store Store
	cfg   *config.Config
}

func NewStatsService(store Store, cfg *config.Config) StatsService {
	return &statsService{
		store: store,
		cfg:   cfg,
	}
}

// Summary computes dashboard counters from the full collection. Revenue
// counts confirmed and completed bookings whose date falls in the current
// month; cancelled and no-show bookings never contribute.
func (s *statsService) Summary(_ context.Context, now time.Time) Summary {
	today := now.Format(model.DateFormat)
	monthPrefix := now.Format("2006-01")
	noShowFloor := now.AddDate(0, 0, -30).Format(model.DateFormat)

	summary := Summary{
		Date:          today,
		PackageCounts: make(map[string]int),
	}

	for _, b := range s.store.ListAll() {
		if b.Date == today && b.Status != model.StatusCancelled {
			summary.TodayBookings++
		}

		switch b.Status {
		case model.StatusPending:
			summary.PendingCount++
		case model.StatusConfirmed:
			summary.ConfirmedCount++
		case model.StatusNoShow:
			if b.Date >= noShowFloor && b.Date <= today {
				summary.RecentNoShows++
			}
		}

		if len(b.Date) >= len(monthPrefix) && b.Date[:len(monthPrefix)] == monthPrefix {
			if b.Status == model.StatusConfirmed || b.Status == model.StatusCompleted {
				summary.MonthRevenue += b.Total
			}
		}

		if b.Status != model.StatusCancelled {
			summary.PackageCounts[b.Package]++
		}
	}

	return summary
}
