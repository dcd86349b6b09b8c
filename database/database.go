package database

import (
	"log"
	"log/slog"
	"time"

	"gallery-api/config"
	"gallery-api/internal/domain/blog"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/profile"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/domain/works"
	"gallery-api/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Models lists every table the service owns, in migration order.
func Models() []any {
	models := []any{
		// core
		&users.User{},
		&users.VerificationToken{},
		&users.RefreshToken{},
		&users.RetiredSlug{},

		// gallery
		&works.Artwork{},
		&works.ArtworkHistory{},
		&works.ArtworkHistoryImage{},

		// blog
		&blog.BlogPost{},

		// storage bookkeeping
		&media.PendingDeletion{},
	}
	return append(models, profile.Models()...)
}

func InitDB() {
	if config.DB_URL == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{
		Logger:         logger.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB: ", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = db

	if err := DB.AutoMigrate(Models()...); err != nil {
		log.Fatal("AutoMigrate error: ", err)
	}

	slog.Info("database connected and migrated")
}
