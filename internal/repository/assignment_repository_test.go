package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestMemoryAssignmentStore(t *testing.T) {
	store := NewMemoryAssignmentStore(SeedAssignments())
	ctx := context.Background()

	ids, err := store.FacilityIDsForStaff(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, []string{"fac-004", "fac-009"}, ids)

	require.NoError(t, store.Assign(ctx, models.FacilityAssignment{StaffID: "8", FacilityID: "fac-001"}))
	require.NoError(t, store.Assign(ctx, models.FacilityAssignment{StaffID: "8", FacilityID: "fac-001"}))
	ids, err = store.FacilityIDsForStaff(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, []string{"fac-001", "fac-004", "fac-009"}, ids)

	require.NoError(t, store.Unassign(ctx, "8", "fac-001"))
	assert.ErrorIs(t, store.Unassign(ctx, "8", "fac-001"), ErrNotFound)

	cs, err := store.FacilityIDsForStaff(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, cs)

	none, err := store.FacilityIDsForStaff(ctx, "3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgresAssignmentStoreFacilityIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := NewPostgresAssignmentStore(db)

	rows := sqlmock.NewRows([]string{"facility_id"}).AddRow("fac-004").AddRow("fac-009")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT facility_id FROM facility_assignments WHERE staff_id = $1 ORDER BY facility_id")).
		WithArgs("2").
		WillReturnRows(rows)

	ids, err := store.FacilityIDsForStaff(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"fac-004", "fac-009"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAssignmentStoreAssignAndUnassign(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := NewPostgresAssignmentStore(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO facility_assignments").
		WithArgs("5", "fac-005", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Assign(context.Background(), models.FacilityAssignment{StaffID: "5", FacilityID: "fac-005", AssignedAt: now}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM facility_assignments WHERE staff_id = $1 AND facility_id = $2")).
		WithArgs("5", "fac-404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.Unassign(context.Background(), "5", "fac-404"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAssignmentStoreList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := NewPostgresAssignmentStore(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"staff_id", "facility_id", "assigned_at"}).AddRow("2", "fac-004", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT staff_id, facility_id, assigned_at FROM facility_assignments")).WillReturnRows(rows)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fac-004", list[0].FacilityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAssignmentStoreEnsureSchema(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS facility_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPostgresAssignmentStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
