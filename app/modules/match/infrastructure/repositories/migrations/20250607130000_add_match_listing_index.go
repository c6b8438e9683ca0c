package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding listing index for matches...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_matches_complete_created
				ON matches (is_complete, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to add listing index to matches: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping listing index for matches...")

		_, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS idx_matches_complete_created;`)
		return err
	})
}
