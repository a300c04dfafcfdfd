// Command seedcatalog converts a catalog pricing Excel workbook into a
// SQL seed file for the catalogs table.
// Expected columns: A=catalog id, B=brand, C=multiplier, D=margin.
// Usage: go run ./cmd/seedcatalog [workbook.xlsx]
// Output: db/seeds/catalogs.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type catalogEntry struct {
	catalogID  string
	brand      string  // empty = NULL
	multiplier float64 // 0 = NULL
	margin     float64 // 0 = NULL
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "catalogs.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/catalogs.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseCatalogSheet(f)
	if err != nil {
		return fmt.Errorf("parse catalog sheet: %w", err)
	}
	log.Printf("catalog sheet: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	fmt.Fprintln(out, "-- Catalog pricing seed data generated from Excel.")
	fmt.Fprintf(out, "-- %d entries.\n", len(entries))
	fmt.Fprintln(out, "BEGIN;")
	fmt.Fprintln(out)

	for _, e := range entries {
		fmt.Fprintf(out,
			"INSERT INTO catalogs (catalog_id, brand, multiplier, margin, updated_at) VALUES (%s, %s, %s, %s, NOW())\n",
			sqlString(e.catalogID), sqlNullString(e.brand), sqlNullFloat(e.multiplier), sqlNullFloat(e.margin))
		fmt.Fprintln(out, "ON CONFLICT (catalog_id) DO UPDATE SET brand = EXCLUDED.brand, multiplier = EXCLUDED.multiplier, margin = EXCLUDED.margin, updated_at = NOW();")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "COMMIT;")

	log.Printf("Generated %d entries in %s", len(entries), outPath)
	return nil
}

// parseCatalogSheet reads the first sheet. Data starts at row index 1
// (row 0 is the header).
func parseCatalogSheet(f *excelize.File) ([]catalogEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []catalogEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 1 {
			continue
		}
		catalogID := strings.TrimSpace(row[0])
		if catalogID == "" || seen[catalogID] {
			continue
		}
		seen[catalogID] = true

		e := catalogEntry{catalogID: catalogID}
		if len(row) > 1 {
			e.brand = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			e.multiplier = parseFloat(row[2])
		}
		if len(row) > 3 {
			e.margin = parseFloat(row[3])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseFloat(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlNullString(s string) string {
	if s == "" {
		return "NULL"
	}
	return sqlString(s)
}

func sqlNullFloat(v float64) string {
	if v == 0 {
		return "NULL"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
