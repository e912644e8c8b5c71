package auth

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/database"
)

const cookieName = "auth_token"

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginAPI checks credentials and sets the auth cookie.
func LoginAPI(c *fiber.Ctx, db *sql.DB) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := database.GetUserByEmail(db, req.Email)
	if err != nil || !CheckPasswordHash(req.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(config.AppConfig.JWT.TTL),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// LogoutAPI clears the auth cookie.
func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{"success": true})
}

// MeAPI returns the signed-in user.
func MeAPI(c *fiber.Ctx, db *sql.DB) error {
	claims := c.Locals("claims").(*JWTClaims)
	user, err := database.GetUserByID(db, claims.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Session user no longer exists")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// AuthMiddleware requires a valid JWT from the cookie or an Authorization
// bearer header and stores the claims in locals.
func AuthMiddleware(c *fiber.Ctx) error {
	token := c.Cookies(cookieName)
	if token == "" {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	claims, err := ParseJWT(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired session")
	}

	c.Locals("claims", claims)
	return c.Next()
}
