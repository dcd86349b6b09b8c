package profile

import (
	usersapi "gallery-api/internal/api/users"
	"gallery-api/internal/domain/profile"
)

// FullProfileDTO is the owner's profile page with every section loaded.
type FullProfileDTO struct {
	Basic           usersapi.ProfileDTO      `json:"basic"`
	ArtistStatement *profile.ArtistStatement `json:"artist_statement"`
	ArtistVideos    []profile.ArtistVideo    `json:"artist_videos"`
	QAList          []profile.ArtistQA       `json:"qa_list"`
	Exhibitions     []profile.Exhibition     `json:"exhibitions"`
	Awards          []profile.Award          `json:"awards"`
}

// PublicProfileDTO is FullProfileDTO as a visitor sees it.
type PublicProfileDTO struct {
	Basic           usersapi.PublicUserDTO   `json:"basic"`
	ArtistStatement *profile.ArtistStatement `json:"artist_statement"`
	ArtistVideos    []profile.ArtistVideo    `json:"artist_videos"`
	QAList          []profile.ArtistQA       `json:"qa_list"`
	Exhibitions     []profile.Exhibition     `json:"exhibitions"`
	Awards          []profile.Award          `json:"awards"`
}

// MainQADTO is the editor's question/answer shape.
type MainQADTO struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	OrderIndex int    `json:"order_index"`
}

type MainProfileDTO struct {
	Basic  usersapi.ProfileDTO `json:"basic"`
	QAList []MainQADTO         `json:"qa_list"`
}

func toFullProfileDTO(p *profile.Profile) FullProfileDTO {
	return FullProfileDTO{
		Basic:           usersapi.BuildProfileDTO(p.User),
		ArtistStatement: p.Statement,
		ArtistVideos:    p.Videos,
		QAList:          p.QA,
		Exhibitions:     p.Exhibitions,
		Awards:          p.Awards,
	}
}

func toPublicProfileDTO(p *profile.Profile) PublicProfileDTO {
	return PublicProfileDTO{
		Basic:           usersapi.BuildPublicUserDTO(p.User),
		ArtistStatement: p.Statement,
		ArtistVideos:    p.Videos,
		QAList:          p.QA,
		Exhibitions:     p.Exhibitions,
		Awards:          p.Awards,
	}
}

func toMainQA(list []profile.ArtistQA) []MainQADTO {
	out := make([]MainQADTO, 0, len(list))
	for _, qa := range list {
		out = append(out, MainQADTO{
			ID:         qa.ID,
			Question:   qa.QuestionKo,
			Answer:     qa.AnswerKo,
			OrderIndex: qa.OrderIndex,
		})
	}
	return out
}
