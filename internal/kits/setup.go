package kits

import (
	"log"

	"github.com/burnett013/faa-kit-aircraft-main/internal/db"
)

// Init makes sure the kits table exists so a fresh deployment serves empty
// results instead of SQL errors. The real table is built by the import job.
func Init() {
	if err := db.DB.AutoMigrate(&Kit{}); err != nil {
		log.Fatal("Failed to auto-migrate kits table: ", err)
	}
}
