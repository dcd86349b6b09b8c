package works

import (
	"gallery-api/internal/domain/access"

	"gorm.io/gorm"
)

type Stats struct {
	TotalArtworks  int64    `json:"total_artworks"`
	WorkInProgress int64    `json:"work_in_progress"`
	Completed      int64    `json:"completed"`
	Archived       int64    `json:"archived"`
	TotalViews     int64    `json:"total_views"`
	TotalLikes     int64    `json:"total_likes"`
	TotalHistories int64    `json:"total_histories"`
	MostViewed     *Artwork `json:"most_viewed"`
	MostRecent     *Artwork `json:"recent_artwork"`
	Years          []string `json:"years"`
	Mediums        []string `json:"mediums"`
}

type statusRow struct {
	Status    Status
	N         int64
	Views     int64
	Likes     int64
	Histories int64
}

// UserArtworkStats aggregates ownerID's gallery. Non-owners only count
// public artworks.
func UserArtworkStats(db *gorm.DB, ownerID uint, viewer access.Viewer) (*Stats, error) {
	scope := func() *gorm.DB { return visibleTo(db, ownerID, viewer, "") }

	var rows []statusRow
	err := scope().
		Select("status, COUNT(*) AS n, COALESCE(SUM(view_count), 0) AS views, " +
			"COALESCE(SUM(like_count), 0) AS likes, COALESCE(SUM(history_count), 0) AS histories").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	s := &Stats{Years: []string{}, Mediums: []string{}}
	for _, r := range rows {
		s.TotalArtworks += r.N
		s.TotalViews += r.Views
		s.TotalLikes += r.Likes
		s.TotalHistories += r.Histories
		switch r.Status {
		case StatusWorkInProgress:
			s.WorkInProgress = r.N
		case StatusCompleted:
			s.Completed = r.N
		case StatusArchived:
			s.Archived = r.N
		}
	}
	if s.TotalArtworks == 0 {
		return s, nil
	}

	var top []Artwork
	if err := scope().Where("view_count > 0").Order("view_count DESC, id ASC").Limit(1).Find(&top).Error; err != nil {
		return nil, err
	}
	if len(top) == 1 {
		s.MostViewed = &top[0]
	}

	var recent []Artwork
	if err := scope().Order("created_at DESC, id DESC").Limit(1).Find(&recent).Error; err != nil {
		return nil, err
	}
	if len(recent) == 1 {
		s.MostRecent = &recent[0]
	}

	if err := scope().Where("year <> ''").Distinct().Order("year ASC").Pluck("year", &s.Years).Error; err != nil {
		return nil, err
	}
	if err := scope().Where("medium <> ''").Distinct().Order("medium ASC").Pluck("medium", &s.Mediums).Error; err != nil {
		return nil, err
	}
	if s.Years == nil {
		s.Years = []string{}
	}
	if s.Mediums == nil {
		s.Mediums = []string{}
	}
	return s, nil
}
