package database

import (
	"embed"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one applied row of the migration log. Each schema change is
// recorded here by version so the sequence is a no-op on re-run.
type Migration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	AppliedAt string
}

func (Migration) TableName() string {
	return "_migrations"
}

// RunMigrations applies the embedded schema migrations in ascending version
// order, each at most once. Safe to call on every startup.
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, filename := range names {
		version, name, err := parseMigrationFilename(filename)
		if err != nil {
			return err
		}

		var applied Migration
		if result := d.db.Where("version = ?", version).First(&applied); result.Error == nil {
			continue
		}

		sqlContent, err := migrationFiles.ReadFile(filepath.Join("migrations", filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		log.Printf("▶️  Applying migration: %s", name)
		for _, stmt := range splitStatements(string(sqlContent)) {
			if err := d.db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
		}

		record := Migration{
			Version:   version,
			Name:      name,
			AppliedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := d.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
	}

	return nil
}

// AppliedMigrations returns the migration log, most recent first.
func (d *Database) AppliedMigrations() ([]Migration, error) {
	var migrations []Migration
	if err := d.db.Order("version DESC").Find(&migrations).Error; err != nil {
		return nil, err
	}
	return migrations, nil
}

// parseMigrationFilename splits "001_initial.sql" into (1, "001_initial").
func parseMigrationFilename(filename string) (int, string, error) {
	name := strings.TrimSuffix(filename, ".sql")
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, "", fmt.Errorf("migration filename %s has no version prefix", filename)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("migration filename %s has a non-numeric version: %w", filename, err)
	}
	return version, name, nil
}

// splitStatements breaks a migration file into individual statements; the
// SQLite driver executes one statement per call.
func splitStatements(sql string) []string {
	var statements []string
	for _, stmt := range strings.Split(sql, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
