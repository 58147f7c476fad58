package models

import "time"

// Activity is an entry of the platform activity feed.
type Activity struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ActivityPage is a page of feed entries plus the upstream total.
type ActivityPage struct {
	Items []Activity `json:"items"`
	Total int64      `json:"total"`
}
