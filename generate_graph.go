//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/report"
)

func main() {
	due := time.Now().AddDate(0, 0, 10)
	bills := []models.Bill{
		{Name: "Aluguel", Amount: decimal.NewFromFloat(1500.00), Category: "Moradia", DueDate: due},
		{Name: "Mercado", Amount: decimal.NewFromFloat(650.30), Category: "Alimentação", DueDate: due},
		{Name: "Internet", Amount: decimal.NewFromFloat(99.90), Category: "Assinaturas", DueDate: due},
		{Name: "Ônibus", Amount: decimal.NewFromFloat(180.00), Category: "Transporte", DueDate: due},
		{Name: "Cinema", Amount: decimal.NewFromFloat(60.00), Category: "Lazer", DueDate: due},
	}

	chartData, err := report.GenerateBillsChart(bills, "Contas por categoria")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("graph.png", chartData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Created graph.png - Example bills-by-category chart")
}
