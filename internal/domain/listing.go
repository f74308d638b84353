package domain

import "time"

// Listing kinds. Courses, events and service offerings share one catalog
// shape and differ only in kind.
const (
	KindCourse  = "course"
	KindEvent   = "event"
	KindService = "service"
)

// Listing is a non-stocked catalog entry (a course, an event or a service
// offering) rendered by the academy and services sections.
type Listing struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PriceCents  int64      `json:"priceCents"`
	Currency    string     `json:"currency"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	Location    string     `json:"location,omitempty"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
