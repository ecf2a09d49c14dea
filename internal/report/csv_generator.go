package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/contasweb/contas-backend/internal/models"
)

// GenerateBillsCSV generates a CSV file from a list of bills.
func GenerateBillsCSV(bills []models.Bill) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Name", "Due Date", "Amount", "Category", "Paid", "Payment Date", "Tags"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range bills {
		paymentDate := ""
		if bills[i].PaymentDate != nil {
			paymentDate = bills[i].PaymentDate.Format("2006-01-02 15:04:05")
		}

		row := []string{
			strconv.Itoa(bills[i].ID),
			bills[i].Name,
			bills[i].DueDate.Format("2006-01-02"),
			bills[i].Amount.StringFixed(2),
			bills[i].Category,
			strconv.FormatBool(bills[i].Paid),
			paymentDate,
			strings.Join(bills[i].Tags, ";"),
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
