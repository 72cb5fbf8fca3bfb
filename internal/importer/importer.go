// Package importer turns CSV exports of income and expenses into rows for
// transaction.Service.Import.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

var (
	ErrUnknownFormat = errors.New("no matching header: expected Date;Type;Category;Description;Amount or Datum;Typ;Kategorie;Beschreibung;Betrag")
	ErrInvalidRow    = errors.New("invalid row")
)

type Parser struct {
	profiles []Profile
}

func NewParser() *Parser {
	return &Parser{profiles: profiles}
}

// Parse decodes r, detects its delimiter and header profile, and returns one
// row per data line. Malformed dates, types, or amounts are reported as a
// *transaction.RowError carrying the file line.
func (p *Parser) Parse(r io.Reader) ([]transaction.ImportRow, error) {
	utf8r, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var (
		profile *Profile
		cols    colIndex
		rows    []transaction.ImportRow
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if profile == nil {
			profile, cols = p.detectProfile(record)
			continue
		}

		if blank(record) {
			continue
		}

		row, err := parseRow(profile, cols, record)
		if err != nil {
			return nil, &transaction.RowError{Line: line, Err: err}
		}

		row.Line = line
		rows = append(rows, row)
	}

	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return rows, nil
}

// colIndex maps lower-case column names to their position.
type colIndex map[string]int

func (p *Parser) detectProfile(record []string) (*Profile, colIndex) {
	cols := make(colIndex, len(record))

	for i, cell := range record {
		if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
			cols[name] = i
		}
	}

	for i := range p.profiles {
		if cols.has(p.profiles[i].requiredCols()...) {
			return &p.profiles[i], cols
		}
	}

	return nil, nil
}

func (c colIndex) has(names ...string) bool {
	for _, n := range names {
		if _, ok := c[n]; !ok {
			return false
		}
	}

	return true
}

// cell returns the trimmed value of column name, or "" when absent.
func (c colIndex) cell(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func parseRow(p *Profile, cols colIndex, record []string) (transaction.ImportRow, error) {
	dateStr := cols.cell(record, p.DateCol)

	date, ok := parseDate(p.DateLayouts, dateStr)
	if !ok {
		return transaction.ImportRow{}, fmt.Errorf("%w: unreadable date %q", ErrInvalidRow, dateStr)
	}

	typeStr := cols.cell(record, p.TypeCol)

	txType, ok := p.parseType(typeStr)
	if !ok {
		return transaction.ImportRow{}, fmt.Errorf("%w: unknown type %q", ErrInvalidRow, typeStr)
	}

	amountStr := cols.cell(record, p.AmountCol)

	amount, err := p.ParseAmount(amountStr)
	if err != nil {
		return transaction.ImportRow{}, fmt.Errorf("%w: %w", ErrInvalidRow, err)
	}

	// A signed amount without a type column reads as money going out.
	if amount < 0 {
		amount = -amount
		if txType == "" {
			txType = category.TypeExpense
		}
	}

	return transaction.ImportRow{
		Date:         date,
		Type:         txType,
		CategoryName: cols.cell(record, p.CategoryCol),
		Description:  cols.cell(record, p.DescCol),
		Amount:       amount,
	}, nil
}

func parseDate(layouts []string, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// detectDelimiter picks ';' or ',' by counting both on the first non-empty line.
func detectDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{','}) > bytes.Count(line, []byte{';'}) {
			return ','
		}

		return ';'
	}

	return ';'
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
