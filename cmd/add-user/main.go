package main

import (
	"flag"
	"log"
	"strings"

	"tuition-admin/app/config"
	"tuition-admin/app/database"
)

func main() {
	email := flag.String("email", "", "login email for the admin account")
	password := flag.String("password", "", "password for the admin account")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: add-user -email <email> -password <password> [-first-name <name>] [-last-name <name>]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.InitDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	user, err := database.CreateUser(config.GetDB(),
		strings.ToLower(strings.TrimSpace(*email)), *password, *firstName, *lastName)
	if err != nil {
		log.Fatal("Failed to create user:", err)
	}

	log.Printf("Created admin account %s (%s)", user.Email, user.ID)
}
