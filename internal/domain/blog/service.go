package blog

import (
	"errors"
	"strings"
	"time"

	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/textsearch"
	"gallery-api/internal/domain/users"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound      = errs.NotFound("Post not found")
	ErrNotAuthor         = errs.Forbidden("You do not have permission to modify this post")
	ErrStudioExists      = errs.Invalid("Only one STUDIO post is allowed. Edit the existing one instead.")
	ErrStudioTypeLocked  = errs.Invalid("The type of a STUDIO post cannot be changed")
	ErrStudioUndeletable = errs.Invalid("STUDIO posts cannot be deleted. Edit the content instead.")
)

func studioExists(tx *gorm.DB, userID, exceptID uint) (bool, error) {
	var n int64
	q := tx.Model(&BlogPost{}).Where("user_id = ? AND post_type = ?", userID, TypeStudio)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreatePost stores a post for userID. A user has at most one STUDIO post.
func CreatePost(db *gorm.DB, userID uint, in PostInput) (*BlogPost, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := errs.Validate(in); err != nil {
		return nil, err
	}

	p := &BlogPost{
		UserID:        userID,
		Title:         in.Title,
		Content:       SanitizeContent(in.Content),
		Excerpt:       strings.TrimSpace(in.Excerpt),
		PostType:      in.PostType,
		Tags:          cleanTags(in.Tags),
		FeaturedImage: in.FeaturedImage,
		IsPublished:   in.IsPublished,
		IsPublic:      in.IsPublic == nil || *in.IsPublic,
		IsPinned:      in.IsPinned,
		ScheduledDate: in.ScheduledDate,
	}
	if p.PostType == "" {
		p.PostType = TypeBlog
	}
	if p.IsPublished {
		p.PublishedAt = publishTime(in.ScheduledDate)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if p.PostType == TypeStudio {
			exists, err := studioExists(tx, userID, 0)
			if err != nil {
				return err
			}
			if exists {
				return ErrStudioExists
			}
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func publishTime(scheduled *time.Time) *time.Time {
	if scheduled != nil {
		t := *scheduled
		return &t
	}
	now := time.Now()
	return &now
}

func visibleTo(p *BlogPost, viewer access.Viewer) bool {
	return viewer.Owns(p.UserID) || (p.IsPublished && p.IsPublic)
}

// GetPost loads a post with its author. Drafts and private posts are only
// visible to their author.
func GetPost(db *gorm.DB, id uint, viewer access.Viewer) (*BlogPost, error) {
	var p BlogPost
	if err := db.Preload("User").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !visibleTo(&p, viewer) {
		return nil, ErrPostNotFound
	}
	return &p, nil
}

// IncrementView counts a read by anyone but the author.
func IncrementView(db *gorm.DB, p *BlogPost, viewer access.Viewer) error {
	if viewer.Owns(p.UserID) {
		return nil
	}
	err := db.Model(&BlogPost{}).Where("id = ?", p.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return err
	}
	p.ViewCount++
	return nil
}

func loadOwned(tx *gorm.DB, id, userID uint) (*BlogPost, error) {
	var p BlogPost
	if err := tx.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotAuthor
	}
	return &p, nil
}

func UpdatePost(db *gorm.DB, id, userID uint, upd PostUpdate) (*BlogPost, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	var out *BlogPost
	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := loadOwned(tx, id, userID)
		if err != nil {
			return err
		}

		if upd.PostType != nil && *upd.PostType != "" && *upd.PostType != p.PostType {
			if p.PostType == TypeStudio {
				return ErrStudioTypeLocked
			}
			if *upd.PostType == TypeStudio {
				exists, err := studioExists(tx, userID, p.ID)
				if err != nil {
					return err
				}
				if exists {
					return ErrStudioExists
				}
			}
		}

		changes := map[string]any{}
		if upd.Title != nil {
			changes["title"] = strings.TrimSpace(*upd.Title)
		}
		if upd.Content != nil {
			changes["content"] = SanitizeContent(*upd.Content)
		}
		if upd.Excerpt != nil {
			changes["excerpt"] = strings.TrimSpace(*upd.Excerpt)
		}
		if upd.PostType != nil && *upd.PostType != "" {
			changes["post_type"] = *upd.PostType
		}
		if upd.Tags != nil {
			changes["tags"] = datatypes.JSONSlice[string](cleanTags(*upd.Tags))
		}
		if upd.FeaturedImage != nil {
			changes["featured_image"] = *upd.FeaturedImage
		}
		if upd.IsPublic != nil {
			changes["is_public"] = *upd.IsPublic
		}
		if upd.IsPinned != nil {
			changes["is_pinned"] = *upd.IsPinned
		}
		if upd.ScheduledDate != nil {
			changes["scheduled_date"] = *upd.ScheduledDate
			changes["published_at"] = *upd.ScheduledDate
		}
		if upd.IsPublished != nil {
			changes["is_published"] = *upd.IsPublished
			if *upd.IsPublished && p.PublishedAt == nil && upd.ScheduledDate == nil {
				changes["published_at"] = *publishTime(p.ScheduledDate)
			}
		}

		if len(changes) > 0 {
			if err := tx.Model(&BlogPost{}).Where("id = ?", p.ID).Updates(changes).Error; err != nil {
				return err
			}
		}
		out = &BlogPost{}
		return tx.Preload("User").First(out, p.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePost removes a post and returns the stored images it referenced that
// sit under the author's folders: the featured image and content images.
func DeletePost(db *gorm.DB, id uint, author *users.User) ([]string, error) {
	var urls []string
	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := loadOwned(tx, id, author.ID)
		if err != nil {
			return err
		}
		if p.PostType == TypeStudio {
			return ErrStudioUndeletable
		}

		slugs, err := users.StorageSlugs(tx, author)
		if err != nil {
			return err
		}
		owner := media.Owner(slugs)
		for _, u := range append([]string{p.FeaturedImage}, media.ExtractImageURLs(p.Content)...) {
			if owner.OwnsURL(u) {
				urls = append(urls, u)
			}
		}
		return tx.Delete(&BlogPost{}, p.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// ListPosts pages through posts, pinned first. Only the author sees their
// drafts and private posts, and only when listing their own slug.
func ListPosts(db *gorm.DB, viewer access.Viewer, q ListQuery) (*PostPage, error) {
	q.normalize()

	query := db.Model(&BlogPost{})
	ownerView := false
	if slug := strings.TrimSpace(q.User); slug != "" {
		author, err := users.GetUserBySlug(db, slug)
		if errors.Is(err, users.ErrUserNotFound) {
			return newPostPage(nil, 0, q), nil
		}
		if err != nil {
			return nil, err
		}
		query = query.Where("user_id = ?", author.ID)
		ownerView = viewer.Owns(author.ID)
	}
	if !ownerView {
		query = query.Where("is_published = ? AND is_public = ?", true, true)
	}
	return listPage(query, q)
}

// ListMine returns every post of userID regardless of state.
func ListMine(db *gorm.DB, userID uint, q ListQuery) (*PostPage, error) {
	q.normalize()
	return listPage(db.Model(&BlogPost{}).Where("user_id = ?", userID), q)
}

func listPage(query *gorm.DB, q ListQuery) (*PostPage, error) {
	if q.PostType != "" {
		query = query.Where("post_type = ?", q.PostType)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		query = textsearch.Where(query, s, "title", "content")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []BlogPost
	err := query.Session(&gorm.Session{}).
		Preload("User").
		Order("is_pinned DESC, created_at DESC, id DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	if !q.FullContent {
		for i := range posts {
			summarize(&posts[i])
		}
	}
	return newPostPage(posts, total, q), nil
}

// summarize drops the body from list items. An excerpt the author wrote is
// kept; otherwise one is cut from the content.
func summarize(p *BlogPost) {
	if p.Excerpt == "" {
		p.Excerpt = Excerpt(p.Content)
	}
	p.Content = ""
}

// StudioPost returns slug's STUDIO post, or nil when there is none the viewer
// may read. Visitors only see it once it is published and public.
func StudioPost(db *gorm.DB, slug string, viewer access.Viewer) (*BlogPost, error) {
	author, err := users.GetUserBySlug(db, slug)
	if err != nil {
		return nil, err
	}

	var posts []BlogPost
	query := db.Where("user_id = ? AND post_type = ?", author.ID, TypeStudio)
	if !viewer.Owns(author.ID) {
		query = query.Where("is_published = ? AND is_public = ?", true, true)
	}
	if err := query.Limit(1).Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}
