// Package export reads and writes the flat tabular interchange format for
// expense views: comma-separated Date,Amount,Category,Notes with a header
// row, UTF-8 encoded.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
)

// DateLayout is the calendar-date format used in exports
const DateLayout = "2006-01-02"

// Header is the fixed column order of the export format
var Header = []string{"Date", "Amount", "Category", "Notes"}

// Row is one parsed line of an expense CSV file
type Row struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string
	Notes    string
}

// RowError records a line that failed to parse. Line numbers are
// 1-based and count the header row.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// WriteCSV writes expenses in the export format. Amounts are rendered
// with two decimal places; dates as YYYY-MM-DD. Row order follows the
// input so a round trip reproduces the same sequence.
func WriteCSV(w io.Writer, expenses []*domain.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, e := range expenses {
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		record := []string{
			e.Date.Format(DateLayout),
			e.Amount.StringFixed(2),
			e.CategoryName,
			notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file in the export format. Rows that fail to parse are
// reported individually without aborting the rest of the file; only a
// missing or wrong header fails the whole read.
func ReadCSV(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, want := range Header {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, nil, fmt.Errorf("unexpected header %q, want %q", header[i], want)
		}
	}

	var rows []Row
	var rowErrs []RowError
	line := 1
	for {
		line++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		row, err := parseRow(record)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

func parseRow(record []string) (Row, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid date %q", record[0])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid amount %q", record[1])
	}

	category := strings.TrimSpace(record[2])
	if category == "" {
		return Row{}, fmt.Errorf("category is required")
	}

	return Row{
		Date:     date,
		Amount:   amount,
		Category: category,
		Notes:    record[3],
	}, nil
}
