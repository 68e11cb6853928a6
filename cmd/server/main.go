package main

import (
	"log"

	"anoa.com/magangmatch/internal/config"
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/server"
	"anoa.com/magangmatch/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedDemoData(db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, inbox change signals disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Posting{},
		&model.CandidateProfile{},
		&model.Application{},
		&model.ChatThread{},
		&model.ChatMessage{},
		&model.Notification{},
	)
}

func seedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Posting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Postings already exist, skipping seed")
		return nil
	}

	postings := []model.Posting{
		{
			CompanyEmail:    "hrd@majumapan.co.id",
			Title:           "Backend Developer Intern",
			Category:        "Software Engineering",
			WorkMode:        "hybrid",
			Province:        "Jawa Barat",
			RequiredSkills:  []string{"Go", "SQL", "Git"},
			PreferredSkills: []string{"Redis", "Docker"},
			Description:     "Magang backend untuk tim platform.",
			Status:          model.PostingActive,
		},
		{
			CompanyEmail:    "hrd@majumapan.co.id",
			Title:           "Frontend Developer Intern",
			Category:        "Software Engineering",
			WorkMode:        "remote",
			Province:        "DKI Jakarta",
			RequiredSkills:  []string{"React", "Node.js", "Git"},
			PreferredSkills: []string{"Tailwind", "Docker"},
			Description:     "Magang frontend untuk aplikasi portal.",
			Status:          model.PostingActive,
		},
	}
	for i := range postings {
		if err := db.Create(&postings[i]).Error; err != nil {
			return err
		}
	}

	profile := model.CandidateProfile{
		Email:    "siswa@example.com",
		Name:     "Siswa Contoh",
		Skills:   []string{"React", "Git", "Tailwind"},
		Province: "DKI Jakarta",
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	log.Println("✅ Demo data seeded successfully")
	return nil
}
