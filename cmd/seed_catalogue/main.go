// seed_catalogue genera un script SQL para poblar el catálogo de artículos
// a partir del export CSV del proveedor (separado por ';', codificado en ISO-8859-1).
//
// Columnas esperadas: supplier;supplier_ref;interfas_ref;name;category;color;unit;safety_stock
//
// Uso: go run ./cmd/seed_catalogue [ruta/catalogue.csv]
// Por defecto busca catalogue.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalogue.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type row struct {
	supplier    string
	supplierRef string
	interfasRef string
	name        string
	category    string
	color       string
	unit        string
	safetyStock string
}

func main() {
	csvPath := "catalogue.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports del proveedor llegan en ISO-8859-1 (acentos franceses)
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 8

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []row
	for i, rec := range records {
		// Primera línea: cabecera
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "supplier") {
			continue
		}
		r := row{
			supplier:    strings.TrimSpace(rec[0]),
			supplierRef: strings.TrimSpace(rec[1]),
			interfasRef: strings.TrimSpace(rec[2]),
			name:        strings.TrimSpace(rec[3]),
			category:    strings.TrimSpace(rec[4]),
			color:       strings.TrimSpace(rec[5]),
			unit:        strings.TrimSpace(rec[6]),
			safetyStock: strings.TrimSpace(rec[7]),
		}
		if r.supplier == "" || r.supplierRef == "" || r.name == "" {
			continue
		}
		if r.safetyStock == "" {
			r.safetyStock = "0"
		}
		rows = append(rows, r)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalogue.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de artículos\n")
	out.WriteString("-- Generado desde el export CSV del proveedor\n\n")

	for _, r := range rows {
		interfas := "NULL"
		if r.interfasRef != "" {
			interfas = "'" + escapeSQL(r.interfasRef) + "'"
		}
		fmt.Fprintf(out, "INSERT INTO articles (id, name, supplier, interfas_ref, supplier_ref, category, color, safety_stock, unit, active)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', %s, '%s', '%s', '%s', %s, '%s', TRUE)\n",
			escapeSQL(r.name), escapeSQL(r.supplier), interfas, escapeSQL(r.supplierRef),
			escapeSQL(r.category), escapeSQL(r.color), r.safetyStock, escapeSQL(r.unit))
		out.WriteString("ON CONFLICT (supplier_ref) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, color = EXCLUDED.color;\n")
	}

	fmt.Printf("Generado %s: %d artículos\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
