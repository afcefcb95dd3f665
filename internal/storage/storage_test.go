package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quejas/backend/internal/models"
	"quejas/backend/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockService(t *testing.T) (*storage.Service, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return storage.NewStorageService(db), mock
}

func TestListEntitiesActiveOnly(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"id", "name", "active"}).
		AddRow(1, "Alcaldía de Tunja", true).
		AddRow(2, "Gobernación de Boyacá", true)
	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE active = \$1 ORDER BY name asc`).
		WithArgs(true).
		WillReturnRows(rows)

	entities, err := svc.ListEntities(context.Background(), true)

	assert.NoError(t, err)
	assert.Len(t, entities, 2)
	assert.Equal(t, "Alcaldía de Tunja", entities[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEntityByIDNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "entities"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	entity, err := svc.GetEntityByID(context.Background(), 99)

	assert.Nil(t, entity)
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindEntityByNameSubstring(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"id", "name", "active"}).
		AddRow(3, "Hospital San Rafael", true)
	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE LOWER\(name\) LIKE \$1 ESCAPE '\\' ORDER BY name asc`).
		WithArgs("%hospital%", 1).
		WillReturnRows(rows)

	entity, err := svc.FindEntityByName(context.Background(), "  Hospital ", false)

	assert.NoError(t, err)
	assert.Equal(t, uint(3), entity.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindEntityByNameExact(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE LOWER\(name\) LIKE \$1 ESCAPE '\\' ORDER BY name asc`).
		WithArgs("uptc", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := svc.FindEntityByName(context.Background(), "UPTC", true)

	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComplaintDefaultsStatus(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "complaints"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	c := &models.Complaint{EntityID: 1, Description: "La vía principal está completamente destruida"}
	err := svc.CreateComplaint(context.Background(), c)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), c.ID)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComplaintReferentialFailure(t *testing.T) {
	svc, mock := newMockService(t)

	fkErr := errors.New(`pq: insert or update on table "complaints" violates foreign key constraint`)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "complaints"`).WillReturnError(fkErr)
	mock.ExpectRollback()

	c := &models.Complaint{EntityID: 9999, Description: "Entidad que no existe en el directorio"}
	err := svc.CreateComplaint(context.Background(), c)

	assert.Error(t, err, "the store must enforce the constraint as a backstop")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "complaints" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := svc.UpdateStatus(context.Background(), 7, models.StatusResolved)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "complaints" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := svc.UpdateStatus(context.Background(), 12345, models.StatusRejected)

	assert.NoError(t, err)
	assert.False(t, ok, "unknown id reports not-found, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteComplaint(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "complaints"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := svc.DeleteComplaint(context.Background(), 7)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListComplaintsJoinsEntityName(t *testing.T) {
	svc, mock := newMockService(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "entity_id", "description", "status", "created_at", "entity_name"}).
		AddRow(2, 1, "Sin agua desde hace tres días en todo el barrio", "pending", now, "Alcaldía de Tunja").
		AddRow(1, 2, "El hospital no entrega citas médicas a tiempo", "resolved", now.Add(-time.Hour), "Hospital San Rafael")
	mock.ExpectQuery(`SELECT complaints\.\*, entities\.name AS entity_name FROM "complaints" JOIN entities ON entities\.id = complaints\.entity_id ORDER BY complaints\.created_at DESC`).
		WillReturnRows(rows)

	list, err := svc.ListComplaints(context.Background())

	assert.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alcaldía de Tunja", list[0].EntityName)
	assert.Equal(t, models.StatusPending, list[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateByEntityIncludesZeroCounts(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"entity_name", "count"}).
		AddRow("Alcaldía de Tunja", 5).
		AddRow("UPTC", 0)
	mock.ExpectQuery(`SELECT entities\.name AS entity_name, COUNT\(complaints\.id\) AS count FROM "entities" LEFT JOIN complaints ON complaints\.entity_id = entities\.id GROUP BY entities\.id, entities\.name ORDER BY count DESC, entities\.name ASC`).
		WillReturnRows(rows)

	counts, err := svc.AggregateByEntity(context.Background())

	assert.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, int64(0), counts[1].Count, "zero-complaint entities must appear")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateByStatus(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 3).
		AddRow("resolved", 2)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "complaints" GROUP BY "status"`).
		WillReturnRows(rows)

	counts, err := svc.AggregateByStatus(context.Background())

	assert.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, models.StatusPending, counts[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	svc := storage.NewStorageService(db)

	mock.ExpectPing()
	assert.True(t, svc.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.False(t, svc.HealthCheck(context.Background()))
}
