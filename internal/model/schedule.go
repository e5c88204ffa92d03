package model

import "time"

// Presenter is the station account attached to a scheduled show. The profile
// photo path is relative to the station media base URL and may be absent.
type Presenter struct {
	Username         string  `json:"username"`
	ProfilePhotoPath *string `json:"profile_photo_path,omitempty"`
}

// ScheduleEntry is one show slot from the station schedule API.
//
// For permanent shows only the UTC day-of-week and time-of-day carried by
// StartTime/EndTime matter; the calendar date is incidental. For one-off shows
// the calendar date of StartTime is the single date the show runs.
type ScheduleEntry struct {
	ShowName      string      `json:"show_name"`
	Description   string      `json:"description"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       time.Time   `json:"end_time"`
	Permanent     bool        `json:"permanent"`
	PermanentEnd  *time.Time  `json:"perm_end,omitempty"`
	ExcludedDates []time.Time `json:"excluded_dates,omitempty"`
	Presenter     *Presenter  `json:"users_permissions_user,omitempty"`
}

// LivePresenter is what the radio screen renders in the presenter banner.
// EndTime is only set for a real scheduled match, never for the auto-DJ.
type LivePresenter struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ShowName    string     `json:"show_name"`
	PhotoURL    *string    `json:"photo_url"`
	IsAutoDJ    bool       `json:"is_auto_dj"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}
