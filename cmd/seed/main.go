package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/volneilb/user-registry/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, name, email, birthday,
			address_postal_code, address_street, address_neighborhood, address_city,
			address_state, address_additional_info, address_number,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at
		RETURNING id
	`, uuid.NewString(), "Volnei", "volnei@email.com", "1997-07-24",
		"12345", "Alguma rua", "Centro", "Florianopolis",
		"SC", "", "100",
		now, now).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s\n", id, "volnei@email.com")
}
