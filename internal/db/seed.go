package db

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts the built-in roles and the default admin account.
// Safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, adminEmail, adminPhone, adminPasswordHash string) error {
	for _, name := range []string{"admin", "user"} {
		if _, err := pool.Exec(ctx, `
			INSERT INTO roles (id, role_name) VALUES ($1, $2)
			ON CONFLICT (role_name) DO NOTHING
		`, uuid.NewString(), name); err != nil {
			return err
		}
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, role_id, phone, email, password_hash)
		SELECT $1, r.id, $2, $3, $4 FROM roles r WHERE r.role_name = 'admin'
		ON CONFLICT (email) DO NOTHING
	`, uuid.NewString(), adminPhone, adminEmail, adminPasswordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		log.Printf("[db] default admin %s created", adminEmail)
	}
	return nil
}
