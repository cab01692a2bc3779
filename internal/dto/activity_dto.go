package dto

import "time"

type ActivityResponse struct {
	Id          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListActivitiesRequest struct {
	Limit int `query:"limit"`
}

type RecordActivityRequest struct {
	Type        string `json:"type" validate:"required,oneof=upload query session delete"`
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}
