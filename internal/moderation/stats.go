// Package moderation provides the admin-facing view over the registration
// set: search, aggregate statistics and CSV export. Every computation is a
// pure function of the current registrations; nothing here caches state.
package moderation

import (
	"sort"
	"strings"
	"time"

	"registrar/internal/registration/models"
)

const trendDays = 7

// Stats is the dashboard aggregate recomputed on every request.
type Stats struct {
	Total        int                `json:"total"`
	StatusCounts StatusCounts       `json:"statusCounts"`
	Institutions []FrequencyEntry   `json:"topInstitutions"`
	Majors       []FrequencyEntry   `json:"topMajors"`
	Years        []YearDistribution `json:"yearDistribution"`
	Trend        []DailyCount       `json:"registrationTrend"`
}

// StatusCounts holds one counter per moderation status. The three counters
// always sum to the total.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// FrequencyEntry is one value of a top-N frequency ranking.
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// YearDistribution is the share of one year-of-study value.
type YearDistribution struct {
	Year    models.YearOfStudy `json:"year"`
	Count   int                `json:"count"`
	Percent float64            `json:"percent"`
}

// DailyCount is the number of registrations received on one calendar day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Compute derives the full dashboard aggregate from the registration set.
// The trend window is the 7 calendar days ending on now's local date.
func Compute(regs []models.Registration, now time.Time) Stats {
	stats := Stats{
		Total:        len(regs),
		Institutions: topN(regs, 5, func(r models.Registration) string { return r.Institution }),
		Majors:       topN(regs, 5, func(r models.Registration) string { return r.Major }),
		Years:        yearDistribution(regs),
		Trend:        dailyTrend(regs, now),
	}
	for _, r := range regs {
		switch r.Status {
		case models.StatusPending:
			stats.StatusCounts.Pending++
		case models.StatusApproved:
			stats.StatusCounts.Approved++
		case models.StatusRejected:
			stats.StatusCounts.Rejected++
		}
	}
	return stats
}

// topN ranks the values produced by key by occurrence count, descending.
// Ties keep the order in which values were first encountered in the input.
func topN(regs []models.Registration, n int, key func(models.Registration) string) []FrequencyEntry {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, r := range regs {
		v := key(r)
		if _, seen := counts[v]; !seen {
			firstSeen[v] = i
		}
		counts[v]++
	}

	entries := make([]FrequencyEntry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, FrequencyEntry{Value: v, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// yearDistribution counts registrations per year-of-study value present in
// the data, in form display order. An empty set yields no entries rather
// than a division by zero.
func yearDistribution(regs []models.Registration) []YearDistribution {
	total := len(regs)
	counts := make(map[models.YearOfStudy]int)
	for _, r := range regs {
		counts[r.YearOfStudy]++
	}

	var dist []YearDistribution
	for _, year := range models.Years() {
		count, ok := counts[year]
		if !ok {
			continue
		}
		dist = append(dist, YearDistribution{
			Year:    year,
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		})
	}
	return dist
}

// dailyTrend counts registrations per calendar day over the window ending on
// now's local date. Days are emitted oldest first, and a day without any
// registrations carries an explicit zero.
func dailyTrend(regs []models.Registration, now time.Time) []DailyCount {
	loc := now.Location()
	counts := make(map[string]int)
	for _, r := range regs {
		counts[r.RegistrationDate.In(loc).Format("2006-01-02")]++
	}

	trend := make([]DailyCount, 0, trendDays)
	for offset := trendDays - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset).Format("2006-01-02")
		trend = append(trend, DailyCount{Date: day, Count: counts[day]})
	}
	return trend
}

// Filter narrows the registration set by a case-insensitive substring query
// and an optional status. The query matches against the participant's name,
// email and institution; both conditions must hold for a record to pass.
func Filter(regs []models.Registration, query string, status models.Status) []models.Registration {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.Registration, 0, len(regs))
	for _, r := range regs {
		if status != "" && r.Status != status {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(strings.Join([]string{
				r.FirstName, r.LastName, r.Email, r.Institution,
			}, " "))
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}
