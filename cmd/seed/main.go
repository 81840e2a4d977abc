// Command seed provisions the database schema and loads the demo storefront
// data: categories, products, level rewards, wheel prizes, voucher codes and
// an admin account. Running it against an already seeded database is a no-op.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"tsmarket/config"
	"tsmarket/internal/domain/progression"
	"tsmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.ClaimedRewardModel{},
		&model.CategoryModel{},
		&model.ProductModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.RewardModel{},
		&model.WheelPrizeModel{},
		&model.TopUpCodeModel{},
		&model.TopUpRequestModel{},
		&model.PaymentSettingsModel{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	var categories int64
	if err := db.Model(&model.CategoryModel{}).Count(&categories).Error; err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if categories > 0 {
		slog.Info("Database already seeded, nothing to do")

		return nil
	}

	return db.Transaction(seed)
}

func seed(tx *gorm.DB) error {
	gaming := uuid.New()
	clothing := uuid.New()
	accessories := uuid.New()
	collectibles := uuid.New()

	categoryRows := []model.CategoryModel{
		{ID: gaming, Name: "Gaming", Slug: "gaming", Description: "Gaming peripherals and accessories"},
		{ID: clothing, Name: "Clothing", Slug: "clothing", Description: "Stylish gaming apparel"},
		{ID: accessories, Name: "Accessories", Slug: "accessories", Description: "Tech accessories"},
		{ID: collectibles, Name: "Collectibles", Slug: "collectibles", Description: "Limited edition items"},
	}
	if err := tx.Create(&categoryRows).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	productRows := []model.ProductModel{
		{
			Name: "Dragon Gaming Headset", Description: "Premium RGB gaming headset with surround sound",
			Price: 1500, XPReward: 150, CategoryID: gaming,
			ImageURL: "https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=500",
			Sizes:    []string{}, Stock: 50, IsActive: true,
		},
		{
			Name: "Neon Gaming Mouse", Description: "High DPI gaming mouse with customizable lighting",
			Price: 800, XPReward: 80, CategoryID: gaming,
			ImageURL: "https://images.unsplash.com/photo-1527814050087-3793815479db?w=500",
			Sizes:    []string{}, Stock: 100, IsActive: true,
		},
		{
			Name: "TSMarket Hoodie", Description: "Premium gaming hoodie with dragon logo",
			Price: 2000, XPReward: 200, CategoryID: clothing,
			ImageURL: "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=500",
			Sizes:    []string{"S", "M", "L", "XL", "XXL"}, Stock: 30, IsActive: true,
		},
		{
			Name: "Gaming T-Shirt", Description: "Comfortable cotton t-shirt for gamers",
			Price: 1000, XPReward: 100, CategoryID: clothing,
			ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
			Sizes:    []string{"S", "M", "L", "XL"}, Stock: 75, IsActive: true,
		},
		{
			Name: "RGB Keyboard", Description: "Mechanical gaming keyboard with Cherry MX switches",
			Price: 2500, XPReward: 250, CategoryID: gaming,
			ImageURL: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=500",
			Sizes:    []string{}, Stock: 40, IsActive: true,
		},
		{
			Name: "Gaming Mousepad XL", Description: "Extended RGB mousepad for full desk coverage",
			Price: 600, XPReward: 60, CategoryID: accessories,
			ImageURL: "https://images.unsplash.com/photo-1616588589676-62b3bd4ff6d2?w=500",
			Sizes:    []string{}, Stock: 200, IsActive: true,
		},
		{
			Name: "Dragon Figurine", Description: "Limited edition TSMarket dragon collectible",
			Price: 5000, XPReward: 500, CategoryID: collectibles,
			ImageURL: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=500",
			Sizes:    []string{}, Stock: 10, IsActive: true,
		},
		{
			Name: "Gaming Cap", Description: "Snapback cap with embroidered dragon",
			Price: 700, XPReward: 70, CategoryID: clothing,
			ImageURL: "https://images.unsplash.com/photo-1588850561407-ed78c282e89b?w=500",
			Sizes:    []string{"One Size"}, Stock: 60, IsActive: true,
		},
	}
	if err := tx.Create(&productRows).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	rewardRows := []model.RewardModel{
		{LevelRequired: 2, Name: "Welcome Bonus", Description: "50 coins for reaching level 2", RewardType: "coins", Value: 50},
		{LevelRequired: 5, Name: "Rising Star", Description: "100 coins for reaching level 5", RewardType: "coins", Value: 100},
		{LevelRequired: 10, Name: "Dragon's Blessing", Description: "500 coins exclusive reward!", RewardType: "coins", Value: 500, IsExclusive: true},
		{LevelRequired: 15, Name: "XP Boost", Description: "200 bonus XP", RewardType: "xp_boost", Value: 200},
		{LevelRequired: 20, Name: "Dragon Master", Description: "1000 coins exclusive reward!", RewardType: "coins", Value: 1000, IsExclusive: true},
	}
	if err := tx.Create(&rewardRows).Error; err != nil {
		return fmt.Errorf("seed rewards: %w", err)
	}

	prizeRows := []model.WheelPrizeModel{
		{Name: "10 Coins", PrizeType: "coins", Value: 10, Probability: 0.3, Color: "#0D9488"},
		{Name: "25 Coins", PrizeType: "coins", Value: 25, Probability: 0.25, Color: "#14B8A6"},
		{Name: "50 Coins", PrizeType: "coins", Value: 50, Probability: 0.2, Color: "#F0ABFC"},
		{Name: "100 Coins", PrizeType: "coins", Value: 100, Probability: 0.1, Color: "#FFD700"},
		{Name: "50 XP", PrizeType: "xp", Value: 50, Probability: 0.1, Color: "#FF4D4D"},
		{Name: "200 Coins JACKPOT!", PrizeType: "coins", Value: 200, Probability: 0.05, Color: "#FFD700"},
	}
	if err := tx.Create(&prizeRows).Error; err != nil {
		return fmt.Errorf("seed wheel prizes: %w", err)
	}

	codeRows := []model.TopUpCodeModel{
		{Code: "WELCOME100", Amount: 100},
		{Code: "DRAGON500", Amount: 500},
		{Code: "GAMING1000", Amount: 1000},
	}
	if err := tx.Create(&codeRows).Error; err != nil {
		return fmt.Errorf("seed topup codes: %w", err)
	}

	admin := model.UserModel{
		Email:      "admin@tsmarket.com",
		Name:       "Admin",
		IsAdmin:    true,
		Balance:    10000,
		XP:         5000,
		Level:      progression.LevelForXP(5000),
		WheelSpins: 5,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	slog.Info("Database seeded successfully")

	return nil
}
