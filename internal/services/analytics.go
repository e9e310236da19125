package services

import (
	"sort"
	"time"

	"github.com/woodworkpro/woodwork-server/internal/models"
)

// MonthRevenue is one bar of the revenue chart, keyed "2006-01" and sorted
// chronologically.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// MaterialUsage sums each measurement category across every saved door.
type MaterialUsage struct {
	Area    float64 `json:"area"`
	Beading float64 `json:"beading"`
	Frame   float64 `json:"frame"`
	Paling  float64 `json:"paling"`
	Polish  float64 `json:"polish"`
}

type Summary struct {
	TotalJobs      int            `json:"totalJobs"`
	TotalRevenue   float64        `json:"totalRevenue"`
	RevenueByMonth []MonthRevenue `json:"revenueByMonth"`
	Materials      MaterialUsage  `json:"materials"`
}

// Summarize computes the analytics view over saved jobs: totals, revenue
// grouped by month, and material usage.
func Summarize(jobs []models.Job) Summary {
	sum := Summary{TotalJobs: len(jobs)}
	byMonth := map[string]float64{}
	for _, j := range jobs {
		sum.TotalRevenue += j.GrandTotal
		byMonth[monthKey(j.Date)] += j.GrandTotal
		for _, d := range j.Doors {
			sum.Materials.Area += d.Area
			sum.Materials.Beading += d.Beading
			sum.Materials.Frame += d.Frame
			sum.Materials.Paling += d.Paling
			sum.Materials.Polish += d.Polish
		}
	}
	for m, r := range byMonth {
		sum.RevenueByMonth = append(sum.RevenueByMonth, MonthRevenue{Month: m, Revenue: r})
	}
	sort.Slice(sum.RevenueByMonth, func(i, k int) bool {
		return sum.RevenueByMonth[i].Month < sum.RevenueByMonth[k].Month
	})
	return sum
}

func monthKey(t time.Time) string { return t.Format("2006-01") }
