package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"record-reconciliation-backend/internal/apperrors"
)

// ColumnMapping names the source columns for each record field. Empty
// entries fall back to the default header names below.
type ColumnMapping struct {
	TransactionID   string `json:"transactionId"`
	Amount          string `json:"amount"`
	ReferenceNumber string `json:"referenceNumber"`
	Date            string `json:"date"`
}

var defaultHeaders = map[string][]string{
	"transactionId":   {"TransactionID", "Transaction ID", "transactionId"},
	"amount":          {"Amount", "amount"},
	"referenceNumber": {"ReferenceNumber", "Reference Number", "referenceNumber"},
	"date":            {"Date", "date"},
}

// ParseCSV turns file bytes into normalized rows. Rows with a missing
// transaction id or a non-numeric amount are dropped and counted in
// the second return value. The transaction id and amount columns must
// resolve or parsing fails; reference number and date are optional.
func ParseCSV(data []byte, mapping *ColumnMapping) ([]RecordInput, int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read CSV header: %w", apperrors.ErrValidation)
	}

	txCol := resolveColumn(headerRow, mapped(mapping, "transactionId"), "transactionId")
	amountCol := resolveColumn(headerRow, mapped(mapping, "amount"), "amount")
	refCol := resolveColumn(headerRow, mapped(mapping, "referenceNumber"), "referenceNumber")
	dateCol := resolveColumn(headerRow, mapped(mapping, "date"), "date")

	if txCol < 0 || amountCol < 0 {
		return nil, 0, fmt.Errorf("transaction id and amount columns are required: %w", apperrors.ErrValidation)
	}

	var inputs []RecordInput
	failed := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failed++
			continue
		}
		if strings.Join(row, "") == "" {
			continue
		}

		txID := cell(row, txCol)
		amount, amountErr := strconv.ParseFloat(cell(row, amountCol), 64)
		if txID == "" || amountErr != nil {
			failed++
			continue
		}

		inputs = append(inputs, RecordInput{
			TransactionID:   txID,
			Amount:          amount,
			ReferenceNumber: cell(row, refCol),
			Date:            parseDate(cell(row, dateCol)),
		})
	}

	return inputs, failed, nil
}

func mapped(mapping *ColumnMapping, field string) string {
	if mapping == nil {
		return ""
	}
	switch field {
	case "transactionId":
		return mapping.TransactionID
	case "amount":
		return mapping.Amount
	case "referenceNumber":
		return mapping.ReferenceNumber
	case "date":
		return mapping.Date
	}
	return ""
}

func resolveColumn(header []string, mappedName, field string) int {
	candidates := defaultHeaders[field]
	if mappedName != "" {
		candidates = []string{mappedName}
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, c := range candidates {
			if strings.EqualFold(h, c) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", "02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
