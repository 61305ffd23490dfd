package view

import (
	"strings"
	"time"

	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
)

// Report date ranges, relative to now.
const (
	RangeAll   = "all"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// ReportFilters are the filters on the reports page.
type ReportFilters struct {
	DateRange  string `form:"date_range" json:"date_range,omitempty"`
	Department string `form:"department" json:"department,omitempty"`
	Type       string `form:"type" json:"type,omitempty"`
}

// ReportScope shows staff their own reports. Admins see all of them.
func ReportScope(v Viewer) filter.Predicate[models.Report] {
	if v.Identity.Role == models.RoleAdmin {
		return nil
	}
	id := v.Identity.ID
	return func(r models.Report) bool { return r.AuthorID == id }
}

// Predicates turns the filters into list predicates evaluated against now.
func (f ReportFilters) Predicates(now time.Time) []filter.Predicate[models.Report] {
	return []filter.Predicate[models.Report]{
		createdSince(f.DateRange, now),
		filter.EqualFold(f.Department, func(x models.Report) string { return x.Department }),
		filter.Equal(f.Type, func(x models.Report) string { return string(x.Type) }),
	}
}

func createdSince(dateRange string, now time.Time) filter.Predicate[models.Report] {
	var cutoff time.Time
	switch strings.ToLower(strings.TrimSpace(dateRange)) {
	case RangeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case RangeMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return func(r models.Report) bool { return !r.CreatedAt.Before(cutoff) }
}
