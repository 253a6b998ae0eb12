package storage

import (
	"database/sql"
	"fmt"

	"brieftube/model"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(info PostgresInfo) (*Postgres, error) {
	db, err := sql.Open("postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		info.Host, info.Port, info.User, info.Password, info.Database))
	if err != nil {
		return &Postgres{}, err
	}
	if err := db.Ping(); err != nil {
		return &Postgres{}, err
	}

	p := &Postgres{db: db}
	if err := p.migrate(pgMigration); err != nil {
		return &Postgres{}, err
	}

	return p, nil
}

var pgMigration = []string{
	`CREATE TABLE account (
id uuid PRIMARY KEY,
username VARCHAR(255) NOT NULL UNIQUE
)`,
	`CREATE TABLE video_summary (
id uuid PRIMARY KEY,
owner_id uuid NOT NULL REFERENCES account(id) ON DELETE CASCADE,
title VARCHAR(200) NOT NULL,
source_link TEXT NOT NULL,
summary_text TEXT NOT NULL,
created_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX video_summary_owner_created ON video_summary (owner_id, created_at DESC)`,
}

func (p *Postgres) migrate(wanted []string) error {
	query := `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// find existing
	rows, err := p.db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := p.db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := p.db.Exec(`
INSERT INTO migration
(query) VALUES ($1)
`, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}

type PostgresSummaryRepository struct {
	db *sql.DB
}

func NewPostgresSummaryRepository(postgres *Postgres) *PostgresSummaryRepository {
	return &PostgresSummaryRepository{db: postgres.db}
}

func (p *PostgresSummaryRepository) Save(summary *model.VideoSummary) error {
	_, err := p.db.Exec(`
INSERT INTO video_summary
(id, owner_id, title, source_link, summary_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, summary.ID, summary.OwnerID, summary.Title, summary.SourceLink, summary.SummaryText, summary.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not save summary: %w", err)
	}

	return nil
}

func (p *PostgresSummaryRepository) FindByOwner(owner uuid.UUID) ([]*model.VideoSummary, error) {
	rows, err := p.db.Query(`
SELECT id, owner_id, title, source_link, summary_text, created_at
FROM video_summary
WHERE owner_id = $1
ORDER BY created_at DESC
`, owner)
	if err != nil {
		return nil, fmt.Errorf("could not find summaries: %w", err)
	}
	defer rows.Close()

	summaries := []*model.VideoSummary{}
	for rows.Next() {
		summary := &model.VideoSummary{}
		if err := rows.Scan(&summary.ID, &summary.OwnerID, &summary.Title, &summary.SourceLink, &summary.SummaryText, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func (p *PostgresSummaryRepository) FindByOwnerAndID(owner, id uuid.UUID) (*model.VideoSummary, error) {
	summary := &model.VideoSummary{}
	err := p.db.QueryRow(`
SELECT id, owner_id, title, source_link, summary_text, created_at
FROM video_summary
WHERE owner_id = $1 AND id = $2
`, owner, id).Scan(&summary.ID, &summary.OwnerID, &summary.Title, &summary.SourceLink, &summary.SummaryText, &summary.CreatedAt)
	switch {
	case err == sql.ErrNoRows:
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("could not find summary: %w", err)
	}

	return summary, nil
}
