package models

import "time"

// Post представляет запись каталога публикаций.
// Каталог read-only: записи сидируются миграцией и не изменяются через API.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CoverURL    string    `json:"coverUrl"`
	AuthorName  string    `json:"authorName"`
	IsPublished bool      `json:"isPublished"`
	TotalViews  int       `json:"totalViews"`
	CreatedAt   time.Time `json:"createdAt"`
}
