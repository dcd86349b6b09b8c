package profile

import (
	"errors"

	"gorm.io/gorm"
)

type StatementInput struct {
	StatementKo *string `json:"statement_ko"`
	StatementEn *string `json:"statement_en"`
}

// UpsertStatement creates or edits the user's single artist statement.
func UpsertStatement(db *gorm.DB, userID uint, in StatementInput) (*ArtistStatement, error) {
	var st ArtistStatement
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&st).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			st = ArtistStatement{UserID: userID}
		} else if err != nil {
			return err
		}
		if in.StatementKo != nil {
			st.StatementKo = *in.StatementKo
		}
		if in.StatementEn != nil {
			st.StatementEn = *in.StatementEn
		}
		return tx.Save(&st).Error
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// GetStatement returns nil when the user never wrote one.
func GetStatement(db *gorm.DB, userID uint) (*ArtistStatement, error) {
	var list []ArtistStatement
	if err := db.Where("user_id = ?", userID).Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}
