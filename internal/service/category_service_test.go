package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/contasweb/contas-backend/internal/auth"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

func TestCategoryService(t *testing.T) {
	tx := database.TestTx(t)
	svc := NewCategoryService(tx)
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UID: "uid-cat-svc"})

	t.Run("creates a category", func(t *testing.T) {
		cat, err := svc.CreateCategory(ctx, "Doações", "Caridade e presentes")
		require.NoError(t, err)
		require.NotZero(t, cat.ID)
		require.Equal(t, "Doações", cat.Name)
	})

	t.Run("lists categories without identity", func(t *testing.T) {
		categories, err := svc.GetCategories(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, categories)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, "", "")
		require.ErrorIs(t, err, ErrInvalidCategoryName)
	})

	t.Run("rejects oversized names", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, strings.Repeat("a", models.MaxCategoryNameLength+1), "")
		require.ErrorIs(t, err, ErrInvalidCategoryName)
	})

	t.Run("rejects anonymous creation", func(t *testing.T) {
		_, err := svc.CreateCategory(context.Background(), "Nova", "")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}
