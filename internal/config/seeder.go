package config

import (
	"log"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedLocations(); err != nil {
		return err
	}
	if err := s.seedDepartments(); err != nil {
		return err
	}
	if err := s.seedSettings(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedLocations seeds the initial locations. "Head Office" must exist:
// bulk imports pin rows to it when the file carries no location.
func (s *Seeder) seedLocations() error {
	locations := []models.Location{
		{Name: "Head Office", Description: "Main office building", IsActive: true},
		{Name: "Warehouse", Description: "Equipment storage", IsActive: true},
	}

	for _, loc := range locations {
		var existing models.Location
		if err := s.db.Where("name = ?", loc.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&loc).Error; err != nil {
					return err
				}
				log.Printf("   Created location: %s", loc.Name)
			}
		}
	}
	return nil
}

// seedDepartments seeds the initial departments
func (s *Seeder) seedDepartments() error {
	departments := []models.Department{
		{Name: "IT", Description: "Information Technology", IsActive: true},
		{Name: "Finance", Description: "Finance and Accounting", IsActive: true},
		{Name: "Operations", Description: "Operations", IsActive: true},
	}

	for _, dept := range departments {
		var existing models.Department
		if err := s.db.Where("name = ?", dept.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&dept).Error; err != nil {
					return err
				}
				log.Printf("   Created department: %s", dept.Name)
			}
		}
	}
	return nil
}

// seedSettings seeds default settings
func (s *Seeder) seedSettings() error {
	defaults := map[string]string{
		models.SettingChartCacheMinutes: "30",
	}

	for key, value := range defaults {
		var existing models.Setting
		if err := s.db.Where("setting_key = ?", key).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
					return err
				}
				log.Printf("   Created setting: %s=%s", key, value)
			}
		}
	}
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		EmployeeID: "EMP00001",
		Name:       "Administrator",
		Email:      "admin@assetdesk.local",
		Password:   hashedPassword,
		Role:       models.RoleAdmin,
		IsActive:   true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.EmployeeID)
	return nil
}
