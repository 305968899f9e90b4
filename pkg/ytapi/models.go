package ytapi

// Wire models for the subset of YouTrack entities the tools touch.
// All of them are immutable snapshots of remote state.

// Project is a YouTrack project reference. ShortName is the human-readable
// key (e.g. "DEMO"), distinct from the internal ID (e.g. "0-5").
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	ShortName string `json:"shortName,omitempty"`
}

// Duration is a work duration as YouTrack reports it.
type Duration struct {
	Minutes      int64  `json:"minutes"`
	Presentation string `json:"presentation,omitempty"`
}

// TimeTracking is the per-issue time tracking settings and totals.
type TimeTracking struct {
	Enabled   bool      `json:"enabled"`
	Estimate  *Duration `json:"estimate,omitempty"`
	SpentTime *Duration `json:"spentTime,omitempty"`
}

// TimeTrackingSummary is the derived aggregate the tools expose:
// estimation and spent time presentations plus totals over the fetched
// work-item list.
type TimeTrackingSummary struct {
	Estimation           string  `json:"estimation,omitempty"`
	SpentTime            string  `json:"spent_time,omitempty"`
	WorkItemsCount       int     `json:"work_items_count"`
	TotalDurationMinutes int64   `json:"total_duration_minutes"`
	TotalDurationHours   float64 `json:"total_duration_hours"`
}
