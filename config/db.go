package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"travelex-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := EnvOrDefault("DB_USER", "root")
	pass := EnvOrDefault("DB_PASS", "")
	host := EnvOrDefault("DB_HOST", "127.0.0.1")
	port := EnvOrDefault("DB_PORT", "3306")
	dbName := EnvOrDefault("DB_NAME", "travelex_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures a default admin account and a starter catalog exist
// so a fresh install is browsable.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", "admin").Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(EnvOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Username: "admin",
				Password: string(hash),
				Email:    "admin@travelex.local",
				Role:     "admin",
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var destCount int64
	DB.Model(&models.Destination{}).Count(&destCount)
	if destCount == 0 {
		promoExpiry := time.Now().AddDate(0, 1, 0)
		flashEnd := time.Now().AddDate(0, 0, 3)
		starter := []models.Destination{
			{
				Name:          "Bali Beach Retreat",
				Country:       "Indonesia",
				Description:   "Seven days of beaches, temples and rice terraces on the island of the gods.",
				Price:         "1500.00",
				OriginalPrice: "1800.00",
				Duration:      7,
				MaxGuests:     4,
				Rating:        "4.8",
				ImageURL:      "https://images.travelex.example/bali-beach-retreat.jpg",
				IsActive:      true,
				PromoTag:      "Early Bird", DiscountPercentage: 15, PromoExpiry: &promoExpiry,
			},
			{
				Name:        "Paris City Tour",
				Country:     "France",
				Description: "Five days in the city of light with museum passes and a Seine cruise.",
				Price:       "2500.00",
				Duration:    5,
				MaxGuests:   2,
				Rating:      "4.6",
				ImageURL:    "https://images.travelex.example/paris-city-tour.jpg",
				IsActive:    true,
			},
			{
				Name:        "Swiss Mountain Escape",
				Country:     "Switzerland",
				Description: "Ten alpine days across Interlaken and Zermatt with rail passes included.",
				Price:       "3400.00",
				Duration:    10,
				MaxGuests:   6,
				Rating:      "4.9",
				ImageURL:    "https://images.travelex.example/swiss-mountain-escape.jpg",
				IsActive:    true,
				FlashSale:   true, FlashSaleEnd: &flashEnd,
			},
			{
				Name:        "Kenya Safari Adventure",
				Country:     "Kenya",
				Description: "Eight days tracking the big five through the Masai Mara with expert guides.",
				Price:       "2900.00",
				Duration:    8,
				MaxGuests:   8,
				Rating:      "4.7",
				ImageURL:    "https://images.travelex.example/kenya-safari-adventure.jpg",
				IsActive:    true,
				SeasonalTag: "Migration Season", GroupDiscountMin: 4,
			},
		}
		if err := DB.Create(&starter).Error; err != nil {
			log.Printf("warning: failed to seed destinations: %v", err)
		} else {
			log.Println("Starter destinations seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Destination{},
		&models.Booking{},
		&models.ActivityLog{},
		&models.Review{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
