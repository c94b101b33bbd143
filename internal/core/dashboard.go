package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

// DashboardStats holds aggregate counts for the overview dashboard.
type DashboardStats struct {
	Anomalies        int           `json:"anomalies"`
	AnomaliesOpen    int           `json:"anomalies_open"`
	AnomaliesTreated int           `json:"anomalies_treated"`
	AnomaliesClosed  int           `json:"anomalies_closed"`
	ShutdownRequired int           `json:"shutdown_required"`
	ByStatus         []StatusCount `json:"by_status"`
	ByCriticality    []TierCount   `json:"by_criticality"`
	OpenByService    []StatusCount `json:"open_by_service"`
	Windows          []WindowLoad  `json:"windows"`
}

// StatusCount holds a count grouped by a label.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TierCount holds a count grouped by criticality tier.
type TierCount struct {
	Level rules.Level `json:"level"`
	Count int         `json:"count"`
}

// WindowLoad holds a maintenance window's capacity utilization.
type WindowLoad struct {
	WindowID       int64  `json:"window_id"`
	Title          string `json:"title"`
	AvailableHours int    `json:"available_hours"`
	BookedHours    int    `json:"booked_hours"`
	AnomalyCount   int    `json:"anomaly_count"`
}

// DashboardService queries aggregate stats.
type DashboardService struct {
	db DB
}

func NewDashboardService(db DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats returns the dashboard aggregates. The four aggregate queries are
// independent, so they run in parallel. Criticality tiers are bucketed in
// Go from the persisted scores so the tier boundaries live in exactly one
// place.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.QueryRow(ctx, `
			SELECT count(*),
			       count(*) FILTER (WHERE status = 'IN_PROGRESS'),
			       count(*) FILTER (WHERE status = 'TREATED'),
			       count(*) FILTER (WHERE status = 'CLOSED'),
			       count(*) FILTER (WHERE sys_shutdown_required AND status <> 'CLOSED')
			FROM anomalies`,
		).Scan(&stats.Anomalies, &stats.AnomaliesOpen, &stats.AnomaliesTreated,
			&stats.AnomaliesClosed, &stats.ShutdownRequired)
		if err != nil {
			return fmt.Errorf("dashboard counts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.db.Query(ctx,
			`SELECT criticality, count(*) FROM anomalies GROUP BY criticality`)
		if err != nil {
			return fmt.Errorf("dashboard criticality: %w", err)
		}
		defer rows.Close()

		tiers := map[rules.Level]int{}
		for rows.Next() {
			var score, count int
			if err := rows.Scan(&score, &count); err != nil {
				return fmt.Errorf("scan criticality count: %w", err)
			}
			tiers[rules.ScoreToLevel(score)] += count
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate criticality counts: %w", err)
		}
		for _, level := range []rules.Level{rules.LevelVeryLow, rules.LevelLow, rules.LevelMedium, rules.LevelHigh, rules.LevelCritical} {
			if n, ok := tiers[level]; ok {
				stats.ByCriticality = append(stats.ByCriticality, TierCount{Level: level, Count: n})
			}
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.db.Query(ctx,
			`SELECT service, count(*) FROM anomalies
			 WHERE status <> 'CLOSED' AND service <> ''
			 GROUP BY service ORDER BY count(*) DESC`)
		if err != nil {
			return fmt.Errorf("dashboard services: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var sc StatusCount
			if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
				return fmt.Errorf("scan service count: %w", err)
			}
			stats.OpenByService = append(stats.OpenByService, sc)
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := s.db.Query(ctx, `
			SELECT w.id, w.title,
			       ROUND(EXTRACT(EPOCH FROM (w.end_date - w.start_date)) / 3600)::int,
			       COALESCE(SUM(a.estimated_time), 0)::int,
			       count(a.id)
			FROM maintenance_windows w
			LEFT JOIN anomalies a ON a.maintenance_window_id = w.id
			GROUP BY w.id, w.title, w.start_date, w.end_date
			ORDER BY w.start_date ASC`)
		if err != nil {
			return fmt.Errorf("dashboard windows: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var wl WindowLoad
			if err := rows.Scan(&wl.WindowID, &wl.Title, &wl.AvailableHours, &wl.BookedHours, &wl.AnomalyCount); err != nil {
				return fmt.Errorf("scan window load: %w", err)
			}
			stats.Windows = append(stats.Windows, wl)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.ByStatus = []StatusCount{
		{Status: "IN_PROGRESS", Count: stats.AnomaliesOpen},
		{Status: "TREATED", Count: stats.AnomaliesTreated},
		{Status: "CLOSED", Count: stats.AnomaliesClosed},
	}
	return stats, nil
}
