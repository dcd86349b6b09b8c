package blog

import (
	usersapi "gallery-api/internal/api/users"
	"gallery-api/internal/domain/blog"
)

// PostDTO is a post with its author. Content is dropped from summarised
// list items.
type PostDTO struct {
	blog.BlogPost
	Content string              `json:"content,omitempty"`
	Author  *usersapi.ArtistDTO `json:"author,omitempty"`
}

type PostPageDTO struct {
	Posts   []PostDTO `json:"posts"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
	Pages   int       `json:"pages"`
	HasNext bool      `json:"has_next"`
	HasPrev bool      `json:"has_prev"`
}

func toPostDTO(p *blog.BlogPost) PostDTO {
	return PostDTO{BlogPost: *p, Content: p.Content, Author: usersapi.BuildArtistDTO(p.User)}
}

func toPostPageDTO(page *blog.PostPage) PostPageDTO {
	out := PostPageDTO{
		Posts:   make([]PostDTO, 0, len(page.Posts)),
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		Pages:   page.Pages,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	}
	for i := range page.Posts {
		out.Posts = append(out.Posts, toPostDTO(&page.Posts[i]))
	}
	return out
}
