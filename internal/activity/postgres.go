package activity

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema migrations of the activity log.
func Migrations() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Migrate applies all pending migrations and returns how many were applied.
func Migrate(db *sql.DB) (int, error) {
	n, err := migrate.Exec(db, "postgres", Migrations(), migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "failed to apply migrations")
	}

	return n, nil
}

// MigrationState is one known migration and when it was applied. AppliedAt is zero for
// pending migrations.
type MigrationState struct {
	ID        string
	AppliedAt time.Time
}

// MigrationStatus lists every known migration in order, together with its applied state.
func MigrationStatus(db *sql.DB) ([]MigrationState, error) {
	migrations, err := Migrations().FindMigrations()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load migrations")
	}

	records, err := migrate.GetMigrationRecords(db, "postgres")
	if err != nil {
		return nil, errors.Wrap(err, "failed to load applied migrations")
	}

	applied := make(map[string]time.Time, len(records))
	for _, r := range records {
		applied[r.Id] = r.AppliedAt
	}

	res := make([]MigrationState, 0, len(migrations))
	for _, m := range migrations {
		res = append(res, MigrationState{ID: m.Id, AppliedAt: applied[m.Id]})
	}

	return res, nil
}

// PostgresStore stores entries in the transaction_activities table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, entry *Entry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return errors.Wrap(err, "failed to marshal activity metadata")
	}

	const query = `
		INSERT INTO transaction_activities (kind, sender, package_id, tx_digest, metadata)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tx_digest) DO UPDATE SET created_at = now()
		RETURNING id, created_at`

	if err := s.db.QueryRowContext(ctx, query,
		entry.Kind,
		entry.Sender,
		entry.PackageID,
		entry.TxDigest,
		metadata,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return errors.Wrap(err, "failed to insert activity")
	}

	return nil
}

func (s *PostgresStore) ListBySender(ctx context.Context, sender string, limit int) ([]Entry, error) {
	const query = `
		SELECT id, kind, sender, package_id, tx_digest, metadata, created_at
		FROM transaction_activities
		WHERE sender = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, sender, clampLimit(limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to query activities")
	}
	defer rows.Close()

	res := make([]Entry, 0)
	for rows.Next() {
		var (
			e        Entry
			metadata []byte
		)

		if err := rows.Scan(&e.ID, &e.Kind, &e.Sender, &e.PackageID, &e.TxDigest, &metadata, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan activity")
		}

		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal metadata of activity %d", e.ID)
		}

		res = append(res, e)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate activities")
	}

	return res, nil
}
