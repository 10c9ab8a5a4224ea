package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"mindspark/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// RunMigrations applies (up) or reverts (down) the bundled schema for the dialect.
// Postgres is migrated with golang-migrate. Oracle has no golang-migrate driver
// for go-ora, so its files are applied in order and tracked in SCHEMA_MIGRATIONS.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if driver == DriverPostgres {
		return runPostgresMigrations(db, direction)
	}
	return runOracleMigrations(ctx, db, migrationsFS, "migrations/oracle", direction)
}

func runPostgresMigrations(db *sqlx.DB, direction string) error {
	src, err := iofs.New(migrationsFS, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	drv, err := pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", drv)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if direction == DirectionUp {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Postgres migrations completed",
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

type migrationFile struct {
	version string
	name    string
}

func runOracleMigrations(ctx context.Context, db *sqlx.DB, fsys fs.FS, dir, direction string) error {
	if err := ensureMigrationTable(ctx, db); err != nil {
		return err
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT VERSION FROM SCHEMA_MIGRATIONS ORDER BY VERSION"); err != nil {
		return fmt.Errorf("could not read applied migrations: %w", err)
	}
	isApplied := make(map[string]bool, len(applied))
	for _, v := range applied {
		isApplied[v] = true
	}

	files, err := listMigrationFiles(fsys, dir, "."+direction+".sql")
	if err != nil {
		return err
	}
	if direction == DirectionDown {
		sort.Slice(files, func(i, j int) bool { return files[i].version > files[j].version })
	}

	log := logger.Get()
	for _, f := range files {
		if (direction == DirectionUp) == isApplied[f.version] {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, f.name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", f.name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", f.name, err)
			}
		}

		if direction == DirectionUp {
			_, err = db.ExecContext(ctx, db.Rebind("INSERT INTO SCHEMA_MIGRATIONS (VERSION) VALUES (?)"), f.version)
		} else {
			_, err = db.ExecContext(ctx, db.Rebind("DELETE FROM SCHEMA_MIGRATIONS WHERE VERSION = ?"), f.version)
		}
		if err != nil {
			return fmt.Errorf("could not record migration %s: %w", f.name, err)
		}
		log.Info("Executed migration", zap.String("file", f.name))
	}

	log.Info("Oracle migrations completed", zap.String("direction", direction))
	return nil
}

func ensureMigrationTable(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM USER_TABLES WHERE TABLE_NAME = 'SCHEMA_MIGRATIONS'"); err != nil {
		return fmt.Errorf("could not inspect migration table: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, "CREATE TABLE SCHEMA_MIGRATIONS (VERSION VARCHAR2(64) PRIMARY KEY)"); err != nil {
		return fmt.Errorf("could not create migration table: %w", err)
	}
	return nil
}

func listMigrationFiles(fsys fs.FS, dir, suffix string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		version, _, _ := strings.Cut(e.Name(), "_")
		files = append(files, migrationFile{version: version, name: e.Name()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// SplitStatements splits a migration file on ';' and drops comments and blanks.
// Oracle rejects a trailing ';' on statements sent through the driver.
func SplitStatements(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, part := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
