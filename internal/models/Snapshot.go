package models

type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusLoaded  FetchStatus = "loaded"
	StatusFailed  FetchStatus = "failed"
)

const (
	NoSelection = -1

	DefaultHeaderDishName = "Italian Spaghetti Pasta"
	DefaultHeaderTime     = "6:30 AM"
)

// Header is the "currently scheduled" banner shown above the catalog.
type Header struct {
	DishName     string  `json:"dishName"`
	ScheduleTime string  `json:"scheduleTime"`
	ImageURL     *string `json:"dishImage,omitempty"`
}

func NewHeader(scheduled *Dish) Header {
	h := Header{DishName: DefaultHeaderDishName, ScheduleTime: "Scheduled " + DefaultHeaderTime}
	if scheduled == nil {
		return h
	}
	if scheduled.Name != nil {
		h.DishName = *scheduled.Name
	}
	if scheduled.ImageURL != nil {
		h.ImageURL = String(*scheduled.ImageURL)
	}
	if scheduled.ScheduleTime != nil {
		h.ScheduleTime = "Scheduled " + *scheduled.ScheduleTime
	}
	return h
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Status              FetchStatus `json:"status"`
	Catalog             []*Dish     `json:"catalog"`
	FetchError          *string     `json:"fetchError"`
	SelectedIndex       int         `json:"selectedIndex"`
	PendingScheduleSlot *Dish       `json:"pendingScheduleSlot"`
	ScheduledDish       *Dish       `json:"scheduledDish"`
	ScheduledInCatalog  bool        `json:"scheduledInCatalog"`
	Header              Header      `json:"header"`
	RescheduleCount     int64       `json:"rescheduleCount"`
	Version             uint64      `json:"version"`
}
