package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ipss-cms/models"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(Config{Driver: DriverSQLite, DSN: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestDialectorNames(t *testing.T) {
	for driver, want := range map[string]string{"postgres": "pgx", "": "pgx", "mysql": "mysql", "sqlite": "sqlite3"} {
		_, name, err := dialector(Config{Driver: driver, DSN: "x"})
		require.NoError(t, err)
		assert.Equal(t, want, name)
	}
}

func TestSQLiteMigrateAndPing(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, "sqlite3", db.Driver)
	assert.Equal(t, "UPDATE t SET a = ? WHERE id = ?", db.SQLX.Rebind("UPDATE t SET a = ? WHERE id = ?"))
}

func TestUniqueViolationFromSQLite(t *testing.T) {
	db := openTestDB(t)

	u := models.User{Name: "A", Email: "a@x.pt", PasswordHash: "h", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Gorm.Create(&u).Error)

	dup := models.User{Name: "B", Email: "a@x.pt", PasswordHash: "h", Role: models.RoleManager, Active: true}
	err := db.Gorm.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = db.SQLX.Exec(db.SQLX.Rebind("INSERT INTO users (nome, email, password_hash, tipo, ativo) VALUES (?, ?, ?, ?, ?)"),
		"C", "a@x.pt", "h", "Manager", true)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1451}))
}

func TestIsNotFound(t *testing.T) {
	db := openTestDB(t)
	var u models.User
	err := db.Gorm.First(&u, 42).Error
	assert.True(t, IsNotFound(err))
}
