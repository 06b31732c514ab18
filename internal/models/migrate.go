package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables of every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}
