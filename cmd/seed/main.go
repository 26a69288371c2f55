// seed generates a SQL seed script for the item master and BOM tables from
// the plant's catalog CSVs.
//
// Usage: go run ./cmd/seed [items.csv] [bom.csv]
//
// items.csv columns: item_code,item_type,sub_category,uom
// bom.csv columns:   fg_code,component_code,role,qty_per_unit,unit_weight
//
// Writes: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/omplast/stores-api/internal/application/dto"
	"github.com/omplast/stores-api/internal/domain/entity"
)

const outPath = "internal/infrastructure/postgres/migrations/002_seed_catalog.sql"

func main() {
	itemsPath := "items.csv"
	bomPath := "bom.csv"
	if len(os.Args) > 1 {
		itemsPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		bomPath = os.Args[2]
	}

	var sb strings.Builder
	sb.WriteString("-- Generated by cmd/seed. Do not edit by hand.\n\n")

	if err := writeItems(&sb, itemsPath); err != nil {
		fmt.Fprintf(os.Stderr, "items: %v\n", err)
		os.Exit(1)
	}
	if err := writeBOM(&sb, bomPath); err != nil {
		fmt.Fprintf(os.Stderr, "bom: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", outPath)
}

func writeItems(sb *strings.Builder, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != 4 {
			return fmt.Errorf("row %d: want 4 columns, got %d", i+1, len(row))
		}
		code, itemType, subCategory, uom := row[0], row[1], row[2], row[3]
		if !entity.ValidItemType(itemType) {
			return fmt.Errorf("row %d: unknown item type %q", i+1, itemType)
		}
		fmt.Fprintf(sb,
			"INSERT INTO stock_items (item_code, item_type, sub_category, uom) VALUES (%s, %s, %s, %s) ON CONFLICT (item_code) DO NOTHING;\n",
			quote(code), quote(itemType), quote(subCategory), quote(uom))
	}
	sb.WriteString("\n")
	return nil
}

func writeBOM(sb *strings.Builder, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != 5 {
			return fmt.Errorf("row %d: want 5 columns, got %d", i+1, len(row))
		}
		qty, err := dto.ParseQuantity(row[3])
		if err != nil {
			return fmt.Errorf("row %d: qty_per_unit: %w", i+1, err)
		}
		weight, err := dto.ParseQuantity(row[4])
		if err != nil {
			return fmt.Errorf("row %d: unit_weight: %w", i+1, err)
		}
		fmt.Fprintf(sb,
			"INSERT INTO bom_components (fg_code, component_code, role, qty_per_unit, unit_weight) VALUES (%s, %s, %s, %s, %s) ON CONFLICT (fg_code, component_code) DO NOTHING;\n",
			quote(row[0]), quote(row[1]), quote(row[2]), qty, weight)
	}
	return nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	var rows [][]string
	header := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
