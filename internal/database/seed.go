package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/storefront-be/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var sampleProducts = []models.Product{
	{
		Title:       "iPhone 15 Pro Max",
		Price:       42900,
		Description: "iPhone 15 Pro Max พร้อม A17 Pro chip, กล้อง 48MP และ Titanium Design",
		Category:    "smartphones",
		Image:       "https://images.unsplash.com/photo-1695048133142-1a20484d2569?w=400",
		Rating:      models.Rating{Rate: 4.8, Count: 156},
		InStock:     true,
	},
	{
		Title:       "Samsung Galaxy S24 Ultra",
		Price:       39900,
		Description: "Samsung Galaxy S24 Ultra พร้อม S Pen และกล้อง 200MP",
		Category:    "smartphones",
		Image:       "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=400",
		Rating:      models.Rating{Rate: 4.7, Count: 142},
		InStock:     true,
	},
	{
		Title:       "MacBook Pro 14\" M3",
		Price:       69900,
		Description: "MacBook Pro 14\" พร้อม M3 chip สมรรถนะสูงสุด",
		Category:    "laptops",
		Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400",
		Rating:      models.Rating{Rate: 4.9, Count: 203},
		InStock:     true,
	},
	{
		Title:       "Dell XPS 15",
		Price:       55900,
		Description: "Dell XPS 15 จอ 4K OLED, Intel i9, RTX 4060",
		Category:    "laptops",
		Image:       "https://images.unsplash.com/photo-1593642632823-8f785ba67e45?w=400",
		Rating:      models.Rating{Rate: 4.6, Count: 98},
		InStock:     true,
	},
	{
		Title:       "iPad Pro 12.9\"",
		Price:       39900,
		Description: "iPad Pro 12.9\" พร้อม M2 chip และ Apple Pencil",
		Category:    "tablets",
		Image:       "https://images.unsplash.com/photo-1585790050230-5dd28404f242?w=400",
		Rating:      models.Rating{Rate: 4.8, Count: 167},
		InStock:     true,
	},
	{
		Title:       "Samsung Galaxy Tab S9",
		Price:       29900,
		Description: "Samsung Galaxy Tab S9 จอ 120Hz พร้อม S Pen",
		Category:    "tablets",
		Image:       "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400",
		Rating:      models.Rating{Rate: 4.5, Count: 89},
		InStock:     true,
	},
	{
		Title:       "AirPods Pro (Gen 2)",
		Price:       8900,
		Description: "AirPods Pro รุ่นที่ 2 พร้อม Active Noise Cancellation",
		Category:    "audio",
		Image:       "https://images.unsplash.com/photo-1606841837239-c5a1a4a07af7?w=400",
		Rating:      models.Rating{Rate: 4.7, Count: 234},
		InStock:     true,
	},
	{
		Title:       "Sony WH-1000XM5",
		Price:       12900,
		Description: "Sony WH-1000XM5 หูฟังตัดเสียงรบกวนระดับท็อป",
		Category:    "audio",
		Image:       "https://images.unsplash.com/photo-1546435770-a3e426bf472b?w=400",
		Rating:      models.Rating{Rate: 4.9, Count: 312},
		InStock:     true,
	},
	{
		Title:       "Apple Watch Series 9",
		Price:       13900,
		Description: "Apple Watch Series 9 พร้อม Always-On Retina Display",
		Category:    "wearables",
		Image:       "https://images.unsplash.com/photo-1434493907317-a46b5bbe7834?w=400",
		Rating:      models.Rating{Rate: 4.8, Count: 189},
		InStock:     true,
	},
	{
		Title:       "Samsung Galaxy Watch 6",
		Price:       10900,
		Description: "Samsung Galaxy Watch 6 ติดตามสุขภาพแบบครบวงจร",
		Category:    "wearables",
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400",
		Rating:      models.Rating{Rate: 4.6, Count: 145},
		InStock:     true,
	},
	{
		Title:       "LG OLED TV 65\"",
		Price:       69900,
		Description: "LG OLED TV 65\" 4K HDR พร้อม webOS",
		Category:    "televisions",
		Image:       "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=400",
		Rating:      models.Rating{Rate: 4.7, Count: 87},
		InStock:     true,
	},
	{
		Title:       "Canon EOS R6 Mark II",
		Price:       89900,
		Description: "Canon EOS R6 Mark II กล้อง Mirrorless Full-frame",
		Category:    "cameras",
		Image:       "https://images.unsplash.com/photo-1502920917128-1aa500764cbd?w=400",
		Rating:      models.Rating{Rate: 4.9, Count: 76},
		InStock:     true,
	},
}

var sampleAccounts = []struct {
	Email    string
	Password string
	Name     string
}{
	{Email: "demo@test.com", Password: "password", Name: "Demo User"},
	{Email: "admin@test.com", Password: "admin123", Name: "Admin User"},
}

// Seed populates the database with demo products and accounts. It is a no-op
// when the products table already has rows, so repeated startups are safe.
func Seed(db *sql.DB, bcryptCost int) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if count > 0 {
		log.Info().Msg("Database already seeded, skipping")
		return nil
	}

	now := time.Now()

	for _, p := range sampleProducts {
		p.ID = uuid.New().String()
		p.PrepareForSave()
		_, err := db.Exec(
			"INSERT INTO products(id, title, price, description, category, image, in_stock, rating_json, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.Title, p.Price, p.Description, p.Category, p.Image, p.InStock, p.RatingJSON, now.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Title, err)
		}
	}
	log.Info().Int("count", len(sampleProducts)).Msg("Seeded products")

	for _, a := range sampleAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		_, err = db.Exec(
			"INSERT INTO accounts(id, email, name, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
			uuid.New().String(), a.Email, a.Name, string(hash), now.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed account %q: %w", a.Email, err)
		}
	}
	log.Info().Int("count", len(sampleAccounts)).Msg("Seeded accounts")

	return nil
}
