package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

func TestUserRepository_Create(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewUserRepository(tx)

	t.Run("creates user with address", func(t *testing.T) {
		user := &models.User{
			ID:    "uid-user-create",
			Name:  "Maria Silva",
			Email: "maria@example.com",
			Phone: "+55 11 99999-0000",
			Address: &models.Address{
				Street: "Rua das Flores", Number: "100", City: "São Paulo", State: "SP",
			},
		}
		err := repo.Create(ctx, user)
		require.NoError(t, err)
		require.False(t, user.CreatedAt.IsZero())
		require.False(t, user.LastLogin.IsZero())

		fetched, err := repo.GetByID(ctx, "uid-user-create")
		require.NoError(t, err)
		require.NotNil(t, fetched)
		require.Equal(t, "Maria Silva", fetched.Name)
		require.NotNil(t, fetched.Address)
		require.Equal(t, "São Paulo", fetched.Address.City)
	})

	t.Run("creates user without address", func(t *testing.T) {
		user := &models.User{ID: "uid-user-noaddr", Name: "João", Email: "joao@example.com"}
		err := repo.Create(ctx, user)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, "uid-user-noaddr")
		require.NoError(t, err)
		require.Nil(t, fetched.Address)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewUserRepository(tx)

	t.Run("returns nil for unknown uid", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, "uid-does-not-exist")
		require.NoError(t, err)
		require.Nil(t, fetched)
	})
}

func TestUserRepository_Update(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewUserRepository(tx)

	user := &models.User{ID: "uid-user-upd", Name: "Maria", Email: "maria@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	t.Run("merges only supplied fields", func(t *testing.T) {
		phone := "+55 21 98888-1111"
		err := repo.Update(ctx, "uid-user-upd", UserUpdate{Phone: &phone})
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, "uid-user-upd")
		require.NoError(t, err)
		require.Equal(t, phone, fetched.Phone)
		require.Equal(t, "Maria", fetched.Name)
	})

	t.Run("writes the address as a document", func(t *testing.T) {
		addr := models.Address{Street: "Av. Paulista", Number: "1000", City: "São Paulo", State: "SP"}
		err := repo.UpdateAddress(ctx, "uid-user-upd", addr)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, "uid-user-upd")
		require.NoError(t, err)
		require.NotNil(t, fetched.Address)
		require.Equal(t, "Av. Paulista", fetched.Address.Street)
	})
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewUserRepository(tx)

	user := &models.User{ID: "uid-user-login", Name: "Maria", Email: "maria@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	err := repo.TouchLastLogin(ctx, "uid-user-login")
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "uid-user-login")
	require.NoError(t, err)
	require.False(t, fetched.LastLogin.Before(user.LastLogin))
}
