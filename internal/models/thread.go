package models

import "time"

type Thread struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"author_id"`
	Title     string     `json:"title"`
	Locked    bool       `json:"locked"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

type ThreadDTO struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Locked    bool   `json:"locked"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (t *Thread) DTO() ThreadDTO {
	return ThreadDTO{
		ID:        t.ID,
		AuthorID:  t.AuthorID,
		Title:     t.Title,
		Locked:    t.Locked,
		CreatedAt: ISOTime(t.CreatedAt),
		UpdatedAt: ISOTime(t.UpdatedAt),
	}
}

type CreateThreadRequest struct {
	Title string `json:"title"`
}

type UpdateThreadRequest struct {
	Title  *string `json:"title"`
	Locked *bool   `json:"locked"`
}
