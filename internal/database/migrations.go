package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address JSONB,
			profile_picture TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bills (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			due_date TIMESTAMPTZ NOT NULL,
			amount DECIMAL(12, 2) NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			payment_date TIMESTAMPTZ,
			description TEXT NOT NULL DEFAULT '',
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bills_user_id ON bills(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_due_date ON bills(due_date)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			bill_id INTEGER NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
			amount_paid DECIMAL(12, 2) NOT NULL,
			payment_method TEXT NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'Confirmado',
			payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_payments_user_id ON payments(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_bill_id ON payments(bill_id)`,

		`CREATE TABLE IF NOT EXISTS finances (
			user_id TEXT PRIMARY KEY REFERENCES users(id),
			current_balance DECIMAL(12, 2) NOT NULL DEFAULT 0,
			total_income DECIMAL(12, 2) NOT NULL DEFAULT 0,
			total_expenses DECIMAL(12, 2) NOT NULL DEFAULT 0,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS finance_history (
			id SERIAL PRIMARY KEY,
			finance_id TEXT NOT NULL,
			user_id TEXT NOT NULL REFERENCES users(id),
			action TEXT NOT NULL,
			old_value DECIMAL(12, 2),
			new_value DECIMAL(12, 2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_finance_history_user_id ON finance_history(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_finance_history_finance_id ON finance_history(finance_id)`,

		`CREATE TABLE IF NOT EXISTS bill_history (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			bill_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			old_data JSONB NOT NULL DEFAULT '{}',
			new_data JSONB NOT NULL DEFAULT '{}',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bill_history_user_id ON bill_history(user_id)`,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// SeedCategories inserts the default bill categories.
func SeedCategories(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []struct {
		name        string
		description string
	}{
		{"Moradia", "Aluguel, condomínio e contas da casa"},
		{"Alimentação", "Mercado e refeições"},
		{"Transporte", "Combustível e transporte público"},
		{"Saúde", "Plano de saúde, farmácia e consultas"},
		{"Educação", "Mensalidades e cursos"},
		{"Lazer", "Entretenimento e viagens"},
		{"Assinaturas", "Streaming e serviços recorrentes"},
		{"Outros", "Despesas diversas"},
	}

	for _, cat := range categories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			cat.name, cat.description,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.name, err)
		}
	}

	return nil
}
