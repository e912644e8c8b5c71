package main

import (
	"log"

	"tuition-admin/app/config"
	"tuition-admin/app/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.InitDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migrations completed successfully")
}
