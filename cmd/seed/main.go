package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/toshniwal-akshay/ecommerce-project/config"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/db"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/util"
	"gorm.io/gorm"
)

// Seeds the admin account and, with -demo, a small demo marketplace.
// Admin accounts are only ever created here, never via the API.
func main() {
	demo := flag.Bool("demo", false, "also seed demo vendors, customers and products")
	adminEmail := flag.String("admin-email", "admin@marketplace.local", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required)")
	flag.Parse()

	if *adminPassword == "" {
		log.Fatal("Usage: go run cmd/seed/main.go -admin-password <password> [-demo]")
	}

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := seedAdmin(db.GetDB(), *adminEmail, *adminPassword); err != nil {
		log.Fatal("Failed to seed admin:", err)
	}
	fmt.Printf("Admin account ready: %s\n", *adminEmail)

	if *demo {
		if err := seedDemoData(db.GetDB()); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		fmt.Println("Demo marketplace seeded.")
	}
}

func seedAdmin(gdb *gorm.DB, email, password string) error {
	var count int64
	if err := gdb.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		admin := &model.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    "Admin",
			Username:     "admin",
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserProfile{UserID: admin.ID}).Error
	})
}

func seedDemoData(gdb *gorm.DB) error {
	type demoProduct struct {
		name     string
		price    float64
		category string
	}
	type demoVendor struct {
		email    string
		username string
		first    string
		shop     string
		products []demoProduct
	}

	vendors := []demoVendor{
		{
			email:    "greenbasket@marketplace.local",
			username: "greenbasket",
			first:    "Asha",
			shop:     "Green Basket",
			products: []demoProduct{
				{"Organic Apples", 4.50, "Fruits"},
				{"Baby Spinach", 2.25, "Vegetables"},
				{"Cherry Tomatoes", 3.10, "Vegetables"},
			},
		},
		{
			email:    "dailybakes@marketplace.local",
			username: "dailybakes",
			first:    "Rohit",
			shop:     "Daily Bakes",
			products: []demoProduct{
				{"Sourdough Loaf", 5.00, "Breads"},
				{"Butter Croissant", 2.75, "Pastries"},
			},
		},
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		hash, err := util.HashPassword("demo-password")
		if err != nil {
			return err
		}

		for _, v := range vendors {
			var count int64
			if err := tx.Model(&model.User{}).Where("email = ?", v.email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			user := &model.User{
				Email:        v.email,
				PasswordHash: hash,
				FirstName:    v.first,
				Username:     v.username,
				Role:         model.RoleVendor,
				IsActive:     true,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}

			profile := &model.UserProfile{UserID: user.ID}
			if err := tx.Create(profile).Error; err != nil {
				return err
			}

			vendor := &model.Vendor{
				UserID:        user.ID,
				UserProfileID: profile.ID,
				ShopName:      v.shop,
				IsApproved:    true,
			}
			if err := tx.Create(vendor).Error; err != nil {
				return err
			}

			categories := make(map[string]uint)
			for _, p := range v.products {
				categoryID, ok := categories[p.category]
				if !ok {
					category := &model.Category{VendorID: vendor.ID, Name: p.category}
					if err := tx.Create(category).Error; err != nil {
						return err
					}
					categoryID = category.ID
					categories[p.category] = categoryID
				}

				product := &model.Product{
					VendorID:    vendor.ID,
					CategoryID:  categoryID,
					Name:        p.name,
					Price:       p.price,
					IsAvailable: true,
				}
				if err := tx.Create(product).Error; err != nil {
					return err
				}
			}
		}

		// One demo customer to shop with.
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", "customer@marketplace.local").Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			customer := &model.User{
				Email:        "customer@marketplace.local",
				PasswordHash: hash,
				FirstName:    "Demo",
				LastName:     "Customer",
				Username:     "democustomer",
				Role:         model.RoleCustomer,
				IsActive:     true,
			}
			if err := tx.Create(customer).Error; err != nil {
				return err
			}
			if err := tx.Create(&model.UserProfile{UserID: customer.ID}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
