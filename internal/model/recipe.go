package model

import (
	"time"
)

// Recipe is a stored recipe record. ID is assigned by the service and
// ImageURL only changes through the image upload flow.
type Recipe struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Category  string    `gorm:"size:255" json:"category"`
	Recipe    string    `gorm:"type:text" json:"recipe"`
	ImageURL  string    `gorm:"size:1024" json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName pins the table name used by migrations.
func (Recipe) TableName() string {
	return "recipes"
}

// HasImage reports whether an image has been uploaded for the recipe.
func (r Recipe) HasImage() bool {
	return r.ImageURL != ""
}

// RecipeInput carries the caller-supplied fields of a new recipe.
type RecipeInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Recipe   string `json:"recipe"`
}

// Page is one slice of a name-ordered recipe listing.
type Page struct {
	Content       []Recipe `json:"content"`
	Page          int      `json:"page"`
	Size          int      `json:"size"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	Last          bool     `json:"last"`
}

// NewPage computes the paging metadata for content taken at page/size out of total.
func NewPage(content []Recipe, page, size int, total int64) Page {
	if content == nil {
		content = []Recipe{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
