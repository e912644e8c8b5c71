package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tuition-admin/app/models"
)

// GetUserByEmail loads an active user for login.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRow(`
		SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
		FROM users WHERE email = $1 AND is_active = true`, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID loads an active user by id.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRow(`
		SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
		FROM users WHERE id = $1 AND is_active = true`, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts an admin account with a bcrypt-hashed password.
func CreateUser(db *sql.DB, email, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
	err = db.QueryRow(`
		INSERT INTO users (id, email, password, first_name, last_name, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.Password, user.FirstName, user.LastName,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}
