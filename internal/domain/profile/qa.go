package profile

import (
	"strings"

	"gorm.io/gorm"
)

// QAInput accepts both the plain question/answer keys the editor sends and
// the explicit language keys.
type QAInput struct {
	Question   string `json:"question"`
	QuestionKo string `json:"question_ko"`
	QuestionEn string `json:"question_en"`
	Answer     string `json:"answer"`
	AnswerKo   string `json:"answer_ko"`
	AnswerEn   string `json:"answer_en"`
	OrderIndex *int   `json:"order_index"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ReplaceQA swaps the user's whole Q&A list. Entries missing a question or an
// answer are dropped.
func ReplaceQA(db *gorm.DB, userID uint, items []QAInput) ([]ArtistQA, error) {
	rows := make([]ArtistQA, 0, len(items))
	for i, it := range items {
		q := firstNonEmpty(it.Question, it.QuestionKo)
		a := firstNonEmpty(it.Answer, it.AnswerKo)
		if q == "" || a == "" {
			continue
		}
		order := i
		if it.OrderIndex != nil {
			order = *it.OrderIndex
		}
		rows = append(rows, ArtistQA{
			UserID:     userID,
			QuestionKo: q,
			QuestionEn: strings.TrimSpace(it.QuestionEn),
			AnswerKo:   a,
			AnswerEn:   strings.TrimSpace(it.AnswerEn),
			IsActive:   true,
			OrderIndex: order,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&ArtistQA{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return ListQA(db, userID)
}

func ListQA(db *gorm.DB, userID uint) ([]ArtistQA, error) {
	list := []ArtistQA{}
	err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("order_index ASC, id ASC").
		Find(&list).Error
	return list, err
}
