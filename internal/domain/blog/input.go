package blog

import (
	"strings"
	"time"

	"gallery-api/internal/domain/errs"
)

type PostInput struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Content       string     `json:"content" validate:"required"`
	Excerpt       string     `json:"excerpt"`
	PostType      string     `json:"post_type" validate:"omitempty,oneof=BLOG NOTICE NEWS EXHIBITION AWARD STUDIO"`
	Tags          []string   `json:"tags" validate:"max=20,dive,max=50"`
	FeaturedImage string     `json:"featured_image" validate:"max=500"`
	IsPublished   bool       `json:"is_published"`
	IsPublic      *bool      `json:"is_public"`
	IsPinned      bool       `json:"is_pinned"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

type PostUpdate struct {
	Title         *string    `json:"title" validate:"omitempty,max=200"`
	Content       *string    `json:"content"`
	Excerpt       *string    `json:"excerpt"`
	PostType      *string    `json:"post_type" validate:"omitempty,oneof=BLOG NOTICE NEWS EXHIBITION AWARD STUDIO"`
	Tags          *[]string  `json:"tags"`
	FeaturedImage *string    `json:"featured_image" validate:"omitempty,max=500"`
	IsPublished   *bool      `json:"is_published"`
	IsPublic      *bool      `json:"is_public"`
	IsPinned      *bool      `json:"is_pinned"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

func (u PostUpdate) validate() error {
	if err := errs.Validate(u); err != nil {
		return err
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return errs.Invalid("title must not be empty")
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return errs.Invalid("content must not be empty")
	}
	if u.Tags != nil {
		if err := validateTags(*u.Tags); err != nil {
			return err
		}
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > 20 {
		return errs.Invalid("tags must have at most 20 entries")
	}
	for _, t := range tags {
		if len(t) > 50 {
			return errs.Invalid("tags must be at most 50 characters each")
		}
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type ListQuery struct {
	PostType    string `form:"post_type"`
	User        string `form:"user"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	FullContent bool   `form:"full_content"`
}

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.PostType = strings.ToUpper(strings.TrimSpace(q.PostType))
	if q.PostType == "ALL" {
		q.PostType = ""
	}
}

type PostPage struct {
	Posts   []BlogPost `json:"posts"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	Limit   int        `json:"limit"`
	Pages   int        `json:"pages"`
	HasNext bool       `json:"has_next"`
	HasPrev bool       `json:"has_prev"`
}

func newPostPage(posts []BlogPost, total int64, q ListQuery) *PostPage {
	if posts == nil {
		posts = []BlogPost{}
	}
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	if pages < 1 {
		pages = 1
	}
	return &PostPage{
		Posts:   posts,
		Total:   total,
		Page:    q.Page,
		Limit:   q.Limit,
		Pages:   pages,
		HasNext: q.Page < pages,
		HasPrev: q.Page > 1,
	}
}
