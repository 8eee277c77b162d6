package seeder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sukasamasuka/internal/database"
)

// Fixed IDs keep repeated seed runs idempotent and let the demo
// posts reference their owners without lookups.
var (
	demoUserAini  = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	demoUserFaiz  = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	demoUserMei   = uuid.MustParse("33333333-3333-4333-8333-333333333333")
	demoUserRavi  = uuid.MustParse("44444444-4444-4444-8444-444444444444")
)

const demoPassword = "sukasamasuka"

type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "profiles", "id", "full_name", "email", "phone_number"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	users := []struct {
		ID       uuid.UUID
		Email    string
		FullName string
		Phone    string
	}{
		{ID: demoUserAini, Email: "aini@demo.sukasamasuka.my", FullName: "Aini binti Rahman", Phone: "012-3456789"},
		{ID: demoUserFaiz, Email: "faiz@demo.sukasamasuka.my", FullName: "Faiz bin Osman", Phone: "013-9876543"},
		{ID: demoUserMei, Email: "mei@demo.sukasamasuka.my", FullName: "Tan Mei Ling", Phone: "017-2223344"},
		{ID: demoUserRavi, Email: "ravi@demo.sukasamasuka.my", FullName: "Ravi a/l Subramaniam", Phone: "019-5556677"},
	}

	for _, u := range users {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			u.ID, u.Email, string(hash),
		); err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO profiles (id, full_name, email, phone_number) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			u.ID, u.FullName, u.Email, u.Phone,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
