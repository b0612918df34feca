package dto

import "time"

type PhotoResponse struct {
	ID        string    `json:"id"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

type ComparisonResponse struct {
	ID        string    `json:"id"`
	BeforeURL string    `json:"before_url"`
	AfterURL  string    `json:"after_url"`
	CreatedAt time.Time `json:"created_at"`
}

type PhotoListResponse struct {
	Photos      []PhotoResponse      `json:"photos"`
	Comparisons []ComparisonResponse `json:"comparisons"`
}
