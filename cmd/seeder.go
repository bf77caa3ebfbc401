package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorhub/mentorhub/internal/roles"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"user_roles", "admin_data", "mentor_data", "mentee_data", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedRoleCatalog(db)

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		adminID := seedUser(db, "admin@mentorhub.dev", "Ava Admin", string(hash))
		mentorID := seedUser(db, "mentor@mentorhub.dev", "Miko Mentor", string(hash))
		menteeID := seedUser(db, "mentee@mentorhub.dev", "Mena Mentee", string(hash))

		seedAssignment(db, adminID, roles.Admin)
		seedAssignment(db, mentorID, roles.Mentor)
		seedAssignment(db, menteeID, roles.Mentee)

		ensureRow(db, "admin_data", adminID,
			"INSERT INTO admin_data (user_id, email, name, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
			adminID, "admin@mentorhub.dev", "Ava Admin")
		ensureRow(db, "mentor_data", mentorID,
			"INSERT INTO mentor_data (user_id, status, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
			mentorID, roles.MentorApproved.String(), "Miko Mentor", "mentor@mentorhub.dev")
		ensureRow(db, "mentee_data", menteeID,
			"INSERT INTO mentee_data (user_id, name, email, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
			menteeID, "Mena Mentee", "mentee@mentorhub.dev")

		fmt.Println("Sample users seeded (password for all:", password+")")
	},
}

func seedRoleCatalog(db *sqlx.DB) {
	for _, name := range roles.CatalogNames {
		var exists int
		if err := db.Get(&exists, "SELECT 1 FROM roles WHERE name = $1", name.String()); err == nil {
			continue
		}
		if _, err := db.Exec("INSERT INTO roles (name, created_at) VALUES ($1, now())", name.String()); err != nil {
			log.Fatalf("failed to insert role %s: %v", name, err)
		}
		fmt.Println("Seeded catalog role:", name)
	}
}

func seedUser(db *sqlx.DB, email, name, passwordHash string) string {
	var id string
	if err := db.Get(&id, "SELECT id FROM users WHERE email = $1", email); err == nil {
		fmt.Println("User already exists:", email)
		return id
	}

	id = uuid.New().String()
	if _, err := db.Exec(
		"INSERT INTO users (id, email, name, password_hash, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, true, now(), now())",
		id, email, name, passwordHash,
	); err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}

func seedAssignment(db *sqlx.DB, userID string, role roles.Name) {
	var roleID int64
	if err := db.Get(&roleID, "SELECT id FROM roles WHERE name = $1", role.String()); err != nil {
		log.Fatalf("role not found after seeding %s: %v", role, err)
	}

	var exists int
	if err := db.Get(&exists, "SELECT 1 FROM user_roles WHERE user_id = $1", userID); err == nil {
		return
	}

	if _, err := db.Exec(
		"INSERT INTO user_roles (user_id, role_id, created_at) VALUES ($1, $2, now())",
		userID, roleID,
	); err != nil {
		log.Fatalf("failed to assign role %s to %s: %v", role, userID, err)
	}
}

func ensureRow(db *sqlx.DB, table, userID, insert string, args ...any) {
	var exists int
	if err := db.Get(&exists, "SELECT 1 FROM "+table+" WHERE user_id = $1", userID); err == nil {
		return
	}
	if _, err := db.Exec(insert, args...); err != nil {
		log.Fatalf("failed to insert into %s: %v", table, err)
	}
}
