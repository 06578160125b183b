package postgresql_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	created := createTestUser(t, db, "Asha Rao", "asha@example.com", strPtr("Engineering"))

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", *byID.Department)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	createTestUser(t, db, "Asha Rao", "asha@example.com", nil)

	_, err := repo.Create(context.Background(), user.User{
		Name:         "Another Asha",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Role:         user.RoleEmployee,
	})

	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_CountByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	createTestUser(t, db, "Asha Rao", "asha@example.com", nil)

	admins, err := repo.CountByRole(context.Background(), user.RoleAdmin)
	require.NoError(t, err)
	employees, err := repo.CountByRole(context.Background(), user.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, int64(0), admins)
	assert.Equal(t, int64(1), employees)
}

func TestUserRepository_List_SearchAndPaging(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewUserRepository(db)
	for i := 0; i < 5; i++ {
		createTestUser(t, db, fmt.Sprintf("Ravi %d", i), fmt.Sprintf("ravi%d@example.com", i), nil)
	}
	createTestUser(t, db, "Meera", "meera@example.com", nil)
	createTestUser(t, db, "100% Sure", "pct@example.com", nil)

	users, total, err := repo.List(context.Background(), user.ListFilter{Search: "ravi", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(context.Background(), user.ListFilter{Search: "%", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "100% Sure", users[0].Name)
}
