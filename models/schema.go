package models

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Schema tooling for the books table.

  AUTO_MIGRATE=true            creates or extends the books table on startup (off unless set)
  GENERATE_COLUMN_REPORT=true  lists columns present in the database but unknown to Book, then exits
  GENERATE_MODELS=true         migrates, reports, and writes gorm/gen query helpers to ./query, then exits

Example report:
=== COLUMN MISMATCH REPORT ===
--- Table: books ---
Found 1 columns not accounted for in model:
  - cover_url

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// modelMappings lists every table the application owns.
var modelMappings = map[string]interface{}{
	"books": Book{},
}

// Migrate creates or extends every application table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Book{}); err != nil {
		return fmt.Errorf("migrate books: %w", err)
	}
	return nil
}

// GenerateQueries migrates the schema and writes type-safe query helpers to outPath.
func GenerateQueries(db *gorm.DB, outPath string, out io.Writer) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := Migrate(migrateDB); err != nil {
		return err
	}

	if err := GenerateColumnMismatchReport(db, out); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Book{})
	g.Execute()

	fmt.Fprintln(out, "Query generation complete!")
	return nil
}

// GenerateColumnMismatchReport writes a report of database columns that aren't accounted for in Go models.
func GenerateColumnMismatchReport(db *gorm.DB, out io.Writer) error {
	fmt.Fprintln(out, "=== COLUMN MISMATCH REPORT ===")

	tables := make([]string, 0, len(modelMappings))
	for tableName := range modelMappings {
		tables = append(tables, tableName)
	}
	sort.Strings(tables)

	totalMismatches := 0
	for _, tableName := range tables {
		fmt.Fprintf(out, "\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			return err
		}
		if len(dbColumns) == 0 {
			fmt.Fprintln(out, "Table does not exist yet (will be created during migration)")
			continue
		}

		mismatches := findColumnMismatches(dbColumns, getModelFields(modelMappings[tableName]))
		if len(mismatches) > 0 {
			fmt.Fprintf(out, "Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Fprintf(out, "  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Fprintln(out, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(out, "\n=== SUMMARY ===\n")
	fmt.Fprintf(out, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return nil
}

// getTableColumns retrieves column names from a database table; empty when the table is missing.
func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	return columns, nil
}

// getModelFields extracts column names from the gorm tags of a struct
func getModelFields(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if columnName := extractColumnNameFromGormTag(field.Tag.Get("gorm")); columnName != "" {
			fields = append(fields, columnName)
		}
	}

	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
