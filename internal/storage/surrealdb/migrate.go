package surrealdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/surrealdb/surrealdb.go"

	"github.com/niveshlab/nivesh/internal/interfaces"
)

const schemaVersionKey = "schema_version"

// migration is one idempotent schema step, applied in order at startup.
// Replaces the old ad-hoc repair endpoints: data fixes run once, are
// versioned, and never need an operator to remember to call them.
type migration struct {
	version int
	name    string
	run     func(ctx context.Context, m *Manager) error
}

var migrations = []migration{
	{
		version: 1,
		name:    "index holdings by client",
		run: func(ctx context.Context, m *Manager) error {
			sql := "DEFINE INDEX IF NOT EXISTS holdings_client ON TABLE holdings FIELDS client_id"
			_, err := surrealdb.Query[any](ctx, m.db, sql, nil)
			return err
		},
	},
	{
		version: 2,
		name:    "index stockdata by isin and date",
		run: func(ctx context.Context, m *Manager) error {
			sql := "DEFINE INDEX IF NOT EXISTS stockdata_isin_date ON TABLE stockdata FIELDS isin, date"
			_, err := surrealdb.Query[any](ctx, m.db, sql, nil)
			return err
		},
	},
	{
		version: 3,
		name:    "normalize fractional shareholding totals",
		run: func(ctx context.Context, m *Manager) error {
			// Legacy records stored fractions (0.57) instead of
			// percentages. Rescale every pattern whose total is
			// below the fraction ceiling.
			sql := `UPDATE corporateinfo SET shareholdingPatterns = shareholdingPatterns.map(|$p|
				IF $p.total < 2.0 THEN {
					period: $p.period,
					promoter: $p.promoter * 100,
					public: $p.public * 100,
					institutional: $p.institutional * 100,
					employeeTrusts: $p.employeeTrusts * 100,
					total: $p.total * 100
				} ELSE $p END
			) WHERE shareholdingPatterns != NONE`
			_, err := surrealdb.Query[any](ctx, m.db, sql, nil)
			return err
		},
	},
	{
		version: 4,
		name:    "drop orphaned stockdata records without isin",
		run: func(ctx context.Context, m *Manager) error {
			sql := "DELETE stockdata WHERE isin = NONE OR isin = ''"
			_, err := surrealdb.Query[any](ctx, m.db, sql, nil)
			return err
		},
	},
}

// Migrate applies all pending migrations. The current schema version lives
// in system_kv so reruns are no-ops.
func (m *Manager) Migrate(ctx context.Context) error {
	current := 0
	if v, err := m.systemStore.GetSystemKV(ctx, schemaVersionKey); err == nil {
		if parsed, perr := strconv.Atoi(v); perr == nil {
			current = parsed
		}
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, mig := range migrations {
		if mig.version <= current {
			continue
		}

		m.logger.Info().Int("version", mig.version).Str("name", mig.name).Msg("Applying migration")

		if err := mig.run(ctx, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", mig.version, mig.name, err)
		}
		if err := m.systemStore.SetSystemKV(ctx, schemaVersionKey, strconv.Itoa(mig.version)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", mig.version, err)
		}
		current = mig.version
	}

	return nil
}
