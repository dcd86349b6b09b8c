package works

import (
	"strings"
	"time"

	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/errs"
)

type ArtworkInput struct {
	Title               string         `json:"title" validate:"required,max=200"`
	Description         string         `json:"description"`
	ArtistName          string         `json:"artist_name" validate:"max=100"`
	ThumbnailURL        string         `json:"thumbnail_url" validate:"max=500"`
	WorkInProgressURL   string         `json:"work_in_progress_url" validate:"max=500"`
	Medium              string         `json:"medium" validate:"max=100"`
	Size                string         `json:"size" validate:"max=100"`
	Year                string         `json:"year" validate:"max=20"`
	Status              Status         `json:"status" validate:"omitempty,oneof=work_in_progress completed archived"`
	Privacy             access.Privacy `json:"privacy" validate:"omitempty,oneof=public private unlisted"`
	StartedAt           *time.Time     `json:"started_at"`
	EstimatedCompletion *time.Time     `json:"estimated_completion"`
}

// ArtworkUpdate lists every field a PUT may touch. Nil means "leave alone".
type ArtworkUpdate struct {
	Title               *string         `json:"title" validate:"omitempty,max=200"`
	Description         *string         `json:"description"`
	ArtistName          *string         `json:"artist_name" validate:"omitempty,max=100"`
	ThumbnailURL        *string         `json:"thumbnail_url" validate:"omitempty,max=500"`
	WorkInProgressURL   *string         `json:"work_in_progress_url" validate:"omitempty,max=500"`
	Medium              *string         `json:"medium" validate:"omitempty,max=100"`
	Size                *string         `json:"size" validate:"omitempty,max=100"`
	Year                *string         `json:"year" validate:"omitempty,max=20"`
	Status              *Status         `json:"status" validate:"omitempty,oneof=work_in_progress completed archived"`
	Privacy             *access.Privacy `json:"privacy" validate:"omitempty,oneof=public private unlisted"`
	StartedAt           *time.Time      `json:"started_at"`
	CompletedAt         *time.Time      `json:"completed_at"`
	EstimatedCompletion *time.Time      `json:"estimated_completion"`
}

func (u ArtworkUpdate) validate() error {
	if err := errs.Validate(u); err != nil {
		return err
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return errs.Invalid("title must not be empty")
	}
	return nil
}

func (u ArtworkUpdate) changes() map[string]any {
	m := map[string]any{}
	setString(m, "title", u.Title)
	setString(m, "description", u.Description)
	setString(m, "artist_name", u.ArtistName)
	setString(m, "thumbnail_url", u.ThumbnailURL)
	setString(m, "work_in_progress_url", u.WorkInProgressURL)
	setString(m, "medium", u.Medium)
	setString(m, "size", u.Size)
	setString(m, "year", u.Year)
	if u.Status != nil && *u.Status != "" {
		m["status"] = *u.Status
	}
	if u.Privacy != nil && *u.Privacy != "" {
		m["privacy"] = *u.Privacy
	}
	setTime(m, "started_at", u.StartedAt)
	setTime(m, "completed_at", u.CompletedAt)
	setTime(m, "estimated_completion", u.EstimatedCompletion)
	return m
}

func setString(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = strings.TrimSpace(*v)
	}
}

func setTime(m map[string]any, col string, v *time.Time) {
	if v != nil {
		m[col] = *v
	}
}

type ListFilter struct {
	Status    Status         `form:"status"`
	Year      string         `form:"year"`
	Medium    string         `form:"medium"`
	Privacy   access.Privacy `form:"privacy"`
	Search    string         `form:"search"`
	SortBy    string         `form:"sort_by"`
	SortOrder string         `form:"sort_order"`
	Page      int            `form:"page"`
	Size      int            `form:"size"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var sortColumns = map[string]string{
	"title":      "title",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"view_count": "view_count",
	"like_count": "like_count",
}

func (f *ListFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = DefaultPageSize
	}
	if f.Size > MaxPageSize {
		f.Size = MaxPageSize
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "created_at"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}

func (f ListFilter) orderClause() string {
	return sortColumns[f.SortBy] + " " + strings.ToUpper(f.SortOrder) + ", id " + strings.ToUpper(f.SortOrder)
}

type Page struct {
	Items   []Artwork `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	Size    int       `json:"size"`
	Pages   int       `json:"pages"`
	HasNext bool      `json:"has_next"`
	HasPrev bool      `json:"has_prev"`
}

func newPage(items []Artwork, total int64, page, size int) *Page {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	if items == nil {
		items = []Artwork{}
	}
	return &Page{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
