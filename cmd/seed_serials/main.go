// seed_serials carga los números de serie exportados por el ERP (CSV en ISO-8859-1, separado por ';'
// con columnas producto;planta;stock;serial) en el oráculo de existencia.
//
// Uso: go run ./cmd/seed_serials [-sqlite serials.db] [-out ruta.sql] export.csv
// Sin -sqlite escribe internal/infrastructure/postgres/migrations/002_seed_serial_numbers.sql.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockchange-api/internal/domain/serial"
	"github.com/jhoicas/stockchange-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockchange-api/pkg/logger"
)

func main() {
	sqlitePath := flag.String("sqlite", "", "catálogo sqlite a poblar en lugar de generar SQL")
	outPath := flag.String("out", "", "script SQL de salida")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})
	if flag.NArg() != 1 {
		log.Fatal().Msg("uso: seed_serials [-sqlite serials.db] [-out ruta.sql] export.csv")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, skipped, err := readSerials(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("seriales sin sufijo numérico válido omitidos")
	}

	if *sqlitePath != "" {
		catalogue, err := sqlite.Open(*sqlitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir catálogo")
		}
		defer catalogue.Close()
		if err := catalogue.Insert(context.Background(), rows); err != nil {
			log.Fatal().Err(err).Msg("insertar seriales")
		}
		log.Info().Int("rows", len(rows)).Str("path", *sqlitePath).Msg("catálogo sqlite poblado")
		return
	}

	path := *outPath
	if path == "" {
		path = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_serial_numbers.sql")
	}
	out, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Msg("crear archivo")
	}
	defer out.Close()
	if err := writeSQL(out, rows); err != nil {
		log.Fatal().Err(err).Msg("escribir SQL")
	}
	log.Info().Int("rows", len(rows)).Str("path", path).Msg("script generado")
}

// readSerials decodifica el CSV del ERP. Omite la cabecera (si la hay), las filas vacías
// y los seriales sin sufijo numérico o con un sufijo que no cabe en el catálogo.
func readSerials(r io.Reader) (rows []sqlite.SerialRow, skipped int, err error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 4 {
			return nil, 0, fmt.Errorf("línea %d: se esperaban 4 columnas, hay %d", line, len(rec))
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "producto") {
			continue
		}
		row := sqlite.SerialRow{
			Product:      strings.TrimSpace(rec[0]),
			Site:         strings.TrimSpace(rec[1]),
			StockID:      strings.TrimSpace(rec[2]),
			SerialNumber: strings.TrimSpace(rec[3]),
		}
		if _, digits, ok := serial.Split(row.SerialNumber); !ok || !serial.SuffixFits(digits) {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

// writeSQL genera los INSERT para la tabla serial_numbers de PostgreSQL.
func writeSQL(w io.Writer, rows []sqlite.SerialRow) error {
	if _, err := io.WriteString(w, "-- Números de serie exportados del ERP\n\n"); err != nil {
		return err
	}
	for _, r := range rows {
		prefix, digits, _ := serial.Split(r.SerialNumber)
		if _, err := fmt.Fprintf(w,
			"INSERT INTO serial_numbers (product, site, stock_id, serial_number, prefix, suffix)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s)\nON CONFLICT DO NOTHING;\n",
			escapeSQL(r.Product), escapeSQL(r.Site), escapeSQL(r.StockID),
			escapeSQL(r.SerialNumber), escapeSQL(prefix), digits,
		); err != nil {
			return err
		}
	}
	return nil
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
