package repositories_test

import (
	"testing"

	"productstore/internal/config"
	"productstore/internal/database"
	"productstore/internal/models"
	"productstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGORMRepository returns a repository backed by a fresh in-memory SQLite database.
func newGORMRepository(t *testing.T) repositories.ProductRepository {
	t.Helper()

	db, err := database.Open(config.Config{DBDriver: config.DriverSQLite, DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.Schema()...))
	t.Cleanup(func() { _ = database.Close(db) })

	return repositories.NewGORMProductRepository(db)
}

func newMemoryRepository(t *testing.T) repositories.ProductRepository {
	return repositories.NewMemoryProductRepository()
}

// Both implementations must behave identically.
var implementations = map[string]func(t *testing.T) repositories.ProductRepository{
	"gorm":   newGORMRepository,
	"memory": newMemoryRepository,
}

func widget() *models.Product {
	return &models.Product{Name: "Widget", Description: "A widget", Price: 9.99, Qty: 10}
}

func TestProductRepository_CreateAssignsFreshIDs(t *testing.T) {
	for name, newRepo := range implementations {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			first := widget()
			require.NoError(t, repo.Create(first))
			assert.Equal(t, uint(1), first.ID)

			second := &models.Product{ID: 99, Name: "Gadget", Description: "A gadget", Price: 1.5, Qty: 3}
			require.NoError(t, repo.Create(second))
			assert.Equal(t, uint(2), second.ID, "caller supplied IDs are ignored")

			_, err := repo.Delete(second.ID)
			require.NoError(t, err)

			third := &models.Product{Name: "Gizmo", Description: "A gizmo", Price: 2, Qty: 1}
			require.NoError(t, repo.Create(third))
			assert.Greater(t, third.ID, second.ID, "deleted IDs are not reused")
		})
	}
}

func TestProductRepository_CreateDuplicateName(t *testing.T) {
	for name, newRepo := range implementations {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			require.NoError(t, repo.Create(widget()))

			err := repo.Create(widget())
			assert.ErrorIs(t, err, repositories.ErrDuplicateProductName)

			products, err := repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, products, 1, "no row is added on a name collision")
		})
	}
}

func TestProductRepository_GetAll(t *testing.T) {
	for name, newRepo := range implementations {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			products, err := repo.GetAll()
			require.NoError(t, err)
			assert.Empty(t, products)

			for _, n := range []string{"Charlie", "Alpha", "Bravo"} {
				require.NoError(t, repo.Create(&models.Product{Name: n, Description: n, Price: 1, Qty: 1}))
			}

			products, err = repo.GetAll()
			require.NoError(t, err)
			require.Len(t, products, 3)
			assert.Equal(t, "Charlie", products[0].Name)
			assert.Equal(t, "Alpha", products[1].Name)
			assert.Equal(t, "Bravo", products[2].Name)
		})
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	for name, newRepo := range implementations {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			created := widget()
			require.NoError(t, repo.Create(created))

			found, err := repo.GetByID(created.ID)
			require.NoError(t, err)
			assert.Equal(t, *created, *found)

			_, err = repo.GetByID(42)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	for name, newRepo := range implementations {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			created := widget()
			require.NoError(t, repo.Create(created))
			other := &models.Product{Name: "Gadget", Description: "A gadget", Price: 1, Qty: 1}
			require.NoError(t, repo.Create(other))

			updated, err := repo.Update(created.ID, models.ProductInput{
				Name: "Widget", Description: "Updated", Price: 12.5, Qty: 5,
			})
			require.NoError(t, err)
			assert.Equal(t, models.Product{ID: created.ID, Name: "Widget", Description: "Updated", Price: 12.5, Qty: 5}, *updated)

			found, err := repo.GetByID(created.ID)
			require.NoError(t, err)
			assert.Equal(t, *updated, *found)

			_, err = repo.Update(created.ID, models.ProductInput{Name: "Gadget", Description: "clash", Price: 1, Qty: 1})
			assert.ErrorIs(t, err, repositories.ErrDuplicateProductName)

			found, err = repo.GetByID(created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Updated", found.Description, "a failed update leaves the row unchanged")

			_, err = repo.Update(42, models.ProductInput{Name: "Ghost", Description: "none", Price: 1, Qty: 1})
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)

			products, err := repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, products, 2)
		})
	}
}

func TestProductRepository_Delete(t *testing.T) {
	for name, newRepo := range implementations {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			created := widget()
			require.NoError(t, repo.Create(created))

			deleted, err := repo.Delete(created.ID)
			require.NoError(t, err)
			assert.Equal(t, *created, *deleted)

			_, err = repo.GetByID(created.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)

			_, err = repo.Delete(created.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)

			require.NoError(t, repo.Create(widget()), "the name is free again after delete")
		})
	}
}
