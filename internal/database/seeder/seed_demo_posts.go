package seeder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sukasamasuka/internal/database"
)

type DemoJobPostsSeeder struct{}

func (DemoJobPostsSeeder) Name() string { return "demo_job_posts" }

// Run seeds a handful of posts that produce both an exact two-way swap
// (Aini and Faiz mirror each other) and a three-way cycle (Mei, Ravi,
// Aini's second post), so a fresh install has matches to look at.
func (DemoJobPostsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_posts", "id", "user_id", "job_name", "job_grade", "current_location", "expected_location"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	posts := []struct {
		ID       uuid.UUID
		UserID   uuid.UUID
		Name     string
		Grade    string
		Current  string
		Expected string
	}{
		{
			ID:       uuid.MustParse("aaaaaaa1-0000-4000-8000-000000000001"),
			UserID:   demoUserAini,
			Name:     "Pegawai Tadbir",
			Grade:    "N41",
			Current:  "Selangor, Petaling",
			Expected: "Johor, Johor Bahru",
		},
		{
			ID:       uuid.MustParse("aaaaaaa1-0000-4000-8000-000000000002"),
			UserID:   demoUserFaiz,
			Name:     "Pegawai Tadbir",
			Grade:    "N41",
			Current:  "Johor, Johor Bahru",
			Expected: "Selangor, Petaling",
		},
		{
			ID:       uuid.MustParse("aaaaaaa1-0000-4000-8000-000000000003"),
			UserID:   demoUserMei,
			Name:     "Pegawai Perkhidmatan Pendidikan",
			Grade:    "DG41",
			Current:  "Pulau Pinang, Timur Laut",
			Expected: "Perak, Kinta",
		},
		{
			ID:       uuid.MustParse("aaaaaaa1-0000-4000-8000-000000000004"),
			UserID:   demoUserRavi,
			Name:     "Pegawai Perkhidmatan Pendidikan",
			Grade:    "DG41",
			Current:  "Perak, Kinta",
			Expected: "Kedah, Kota Setar",
		},
		{
			ID:       uuid.MustParse("aaaaaaa1-0000-4000-8000-000000000005"),
			UserID:   demoUserAini,
			Name:     "Pegawai Perkhidmatan Pendidikan",
			Grade:    "DG41",
			Current:  "Kedah, Kota Setar",
			Expected: "Pulau Pinang, Timur Laut",
		},
	}

	for _, p := range posts {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO job_posts (id, user_id, job_name, job_grade, current_location, expected_location)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.UserID, p.Name, p.Grade, p.Current, p.Expected,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
