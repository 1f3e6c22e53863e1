package models

import (
	"log"

	"gorm.io/gorm"
)

// MigrateTable ensures both entity tables exist. AutoMigrate tolerates
// already-existing tables, so repeated startups are safe.
func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&Order{},
		&Product{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
