package models

import "time"

type Post struct {
	ID        string     `json:"id"`
	ThreadID  string     `json:"thread_id"`
	AuthorID  string     `json:"author_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

type PostDTO struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (p *Post) DTO() PostDTO {
	return PostDTO{
		ID:        p.ID,
		ThreadID:  p.ThreadID,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		CreatedAt: ISOTime(p.CreatedAt),
		UpdatedAt: ISOTime(p.UpdatedAt),
	}
}

type CreatePostRequest struct {
	ThreadID string `json:"thread_id"`
	Body     string `json:"body"`
}

type UpdatePostRequest struct {
	Body string `json:"body"`
}
