package models

// Dish is one catalog entry. Wire fields are optional because the remote
// payload is not validated. ScheduleTime is local only and is set by the
// reschedule flow.
type Dish struct {
	Published    *bool   `json:"isPublished,omitempty"`
	ID           *string `json:"dishId,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	Name         *string `json:"dishName,omitempty"`
	ScheduleTime *string `json:"scheduleTime,omitempty"`
}

func (d *Dish) GetID() string {
	if d == nil || d.ID == nil {
		return ""
	}
	return *d.ID
}

func (d *Dish) GetName() string {
	if d == nil || d.Name == nil {
		return ""
	}
	return *d.Name
}

func (d *Dish) GetScheduleTime() string {
	if d == nil || d.ScheduleTime == nil {
		return ""
	}
	return *d.ScheduleTime
}

func (d *Dish) IsScheduled() bool {
	return d != nil && d.ScheduleTime != nil
}

// Clone returns a deep copy so callers can hand dishes out of locked state.
func (d *Dish) Clone() *Dish {
	if d == nil {
		return nil
	}
	return &Dish{
		Published:    cloneBool(d.Published),
		ID:           cloneString(d.ID),
		ImageURL:     cloneString(d.ImageURL),
		Name:         cloneString(d.Name),
		ScheduleTime: cloneString(d.ScheduleTime),
	}
}

func CloneDishes(dishes []*Dish) []*Dish {
	out := make([]*Dish, len(dishes))
	for i, d := range dishes {
		out[i] = d.Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func String(s string) *string { return &s }

func Bool(b bool) *bool { return &b }
