package dbhelper

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ffoods/quickbill/database"
	"github.com/ffoods/quickbill/models"
)

func CreateUser(tx *sql.Tx, name, email, phone, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO users (name, email, phone, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, email, phone, hashedPassword).Scan(&id)
	return id, err
}

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.QuickBill.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sql.Tx, userID uuid.UUID, role models.Role) error {
	_, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	return err
}

func GetUserByPassword(email, password string) (*models.User, error) {
	var u models.User
	var hashedPassword string

	err := database.QuickBill.QueryRow(`
		SELECT id, name, email, phone, password FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &hashedPassword)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return nil, fmt.Errorf("incorrect password")
	}
	return &u, nil
}

func GetUserRoles(userID uuid.UUID) ([]string, error) {
	rows, err := database.QuickBill.Query(`
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// EnsureAdmin creates the admin account if no user with the given email
// exists yet. Running it repeatedly never creates a second account.
func EnsureAdmin(name, email, password, phone string) (created bool, err error) {
	exists, err := IsUserExists(email)
	if err != nil {
		return false, fmt.Errorf("check admin existence: %w", err)
	}
	if exists {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	err = database.Tx(func(tx *sql.Tx) error {
		id, err := CreateUser(tx, name, email, phone, string(hashed))
		if err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		if err := AssignRole(tx, id, models.RoleAdmin); err != nil {
			return fmt.Errorf("assign admin role: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
