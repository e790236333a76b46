package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

const createQuestionsSQL = `
CREATE TABLE IF NOT EXISTS questions (
    id       TEXT PRIMARY KEY,
    language TEXT NOT NULL,
    data     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS questions_language_idx ON questions (language);
`

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createQuestionsSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS questions`)
			return err
		},
	)
}
