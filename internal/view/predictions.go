package view

import "github.com/noah-isme/ur-campus-api/internal/models"

// PredictionFilters are passed through to the provider, which filters on its side.
type PredictionFilters struct {
	Year     string `form:"year" json:"year,omitempty"`
	Type     string `form:"type" json:"type,omitempty"`
	Priority string `form:"priority" json:"priority,omitempty"`
}

// ProviderFilter converts the page filters to the provider query.
func (f PredictionFilters) ProviderFilter() models.PredictionFilter {
	return models.PredictionFilter{Year: f.Year, Type: f.Type, Priority: f.Priority}
}
