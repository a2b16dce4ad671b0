package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormSettingsRepository(t *testing.T) {
	repo := NewGormSettingsRepository(setupProjectTestDB(t))
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, invoicing.SelectedTemplateKey)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, invoicing.SelectedTemplateKey, "modern"))

		value, err := repo.Get(ctx, invoicing.SelectedTemplateKey)
		require.NoError(t, err)
		assert.Equal(t, "modern", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, invoicing.SelectedTemplateKey, "corporate"))

		value, err := repo.Get(ctx, invoicing.SelectedTemplateKey)
		require.NoError(t, err)
		assert.Equal(t, "corporate", value)
	})
}

func TestGormSettingsRepository_SQL(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := NewGormSettingsRepository(gormDB)

	t.Run("upserts on key", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "settings" .* ON CONFLICT \("key"\) DO UPDATE SET "value"="excluded"."value","updated_at"="excluded"."updated_at"`).
			WithArgs("selected_template_id", "minimal", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Set(context.Background(), "selected_template_id", "minimal"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE key = \$1`).
			WithArgs("selected_template_id", 1).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(context.Background(), "selected_template_id")
		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
