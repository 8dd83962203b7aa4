package history

import (
	"context"
	"fmt"
	"math"
	"time"
)

// StatsWindow is the period the dashboard reports on.
const StatsWindow = 7 * 24 * time.Hour

// Stats is the dashboard view over the last StatsWindow, compared with the window before it.
type Stats struct {
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	SuccessRate   float64       `json:"success_rate"`
	AvgConfirm    time.Duration `json:"-"`
	AvgConfirmSec float64       `json:"avg_confirm_seconds"`

	TotalChange       float64 `json:"total_change_pct"`
	SuccessRateChange float64 `json:"success_rate_change_pct"`
	AvgConfirmChange  float64 `json:"avg_confirm_change_ms"`

	Daily []DayCount `json:"daily"`
	From  time.Time  `json:"from"`
	To    time.Time  `json:"to"`
}

// ComputeStats builds Stats for the window ending at now.
func ComputeStats(ctx context.Context, s Store, now time.Time) (*Stats, error) {
	to := now.UTC()
	from := to.Add(-StatsWindow)
	prevFrom := from.Add(-StatsWindow)

	cur, err := s.Summarize(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize current window: %w", err)
	}
	prev, err := s.Summarize(ctx, prevFrom, from)
	if err != nil {
		return nil, fmt.Errorf("summarize previous window: %w", err)
	}
	daily, err := s.Daily(ctx, dayStart(to).Add(-6*24*time.Hour), to)
	if err != nil {
		return nil, fmt.Errorf("count daily operations: %w", err)
	}

	rate := successRate(cur)
	return &Stats{
		Total:             cur.Total,
		Succeeded:         cur.Succeeded,
		Failed:            cur.Failed,
		SuccessRate:       rate,
		AvgConfirm:        cur.AvgConfirm,
		AvgConfirmSec:     cur.AvgConfirm.Seconds(),
		TotalChange:       percentChange(float64(prev.Total), float64(cur.Total)),
		SuccessRateChange: round1(rate - successRate(prev)),
		AvgConfirmChange:  float64((cur.AvgConfirm - prev.AvgConfirm).Milliseconds()),
		Daily:             fillDays(daily, dayStart(to), 7),
		From:              from,
		To:                to,
	}, nil
}

// successRate is the percentage of resolved operations that succeeded.
func successRate(s Summary) float64 {
	resolved := s.Succeeded + s.Failed
	if resolved == 0 {
		return 0
	}
	return round1(float64(s.Succeeded) * 100 / float64(resolved))
}

func percentChange(prev, cur float64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return round1((cur - prev) * 100 / prev)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// fillDays returns exactly n days ending with last, oldest first, with missing days as zero.
func fillDays(counts []DayCount, last time.Time, n int) []DayCount {
	byDay := make(map[time.Time]int, len(counts))
	for _, c := range counts {
		byDay[dayStart(c.Day)] += c.Count
	}
	out := make([]DayCount, n)
	for i := 0; i < n; i++ {
		day := last.Add(-time.Duration(n-1-i) * 24 * time.Hour)
		out[i] = DayCount{Day: day, Count: byDay[day]}
	}
	return out
}
