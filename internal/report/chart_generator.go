// Package report renders CSV and PNG exports of a user's bills and
// balance history.
package report

import (
	"fmt"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

// GenerateBillsChart creates a pie chart of bill amounts by category.
// Returns PNG image as bytes.
func GenerateBillsChart(bills []models.Bill, title string) ([]byte, error) {
	if len(bills) == 0 {
		return nil, fmt.Errorf("no bills to chart")
	}

	categoryTotals := aggregateByCategory(bills)

	var values []float64
	var categoryNames []string
	for categoryName, total := range categoryTotals {
		categoryNames = append(categoryNames, categoryName)
		values = append(values, total.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.LegendLabelsOptionFunc(categoryNames),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// GenerateBalanceChart creates a line chart of the balance over time
// from balance_update history entries (plus the creation entry).
// Returns PNG image as bytes.
func GenerateBalanceChart(entries []models.FinanceHistoryEntry, title string) ([]byte, error) {
	var values []float64
	var labels []string
	for _, e := range entries {
		if e.Action != models.FinanceActionCreated && e.Action != models.FinanceActionBalanceUpdate {
			continue
		}
		values = append(values, e.NewValue.InexactFloat64())
		labels = append(labels, e.Timestamp.Format("02/01"))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no balance history to chart")
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.XAxisLabelsOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Saldo"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// aggregateByCategory groups bills and returns category totals.
func aggregateByCategory(bills []models.Bill) map[string]decimal.Decimal {
	categoryTotals := make(map[string]decimal.Decimal)

	for _, bill := range bills {
		categoryName := bill.Category
		if categoryName == "" {
			categoryName = "Sem categoria"
		}

		if existing, ok := categoryTotals[categoryName]; ok {
			categoryTotals[categoryName] = existing.Add(bill.Amount)
		} else {
			categoryTotals[categoryName] = bill.Amount
		}
	}

	return categoryTotals
}
