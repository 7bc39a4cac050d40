package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDeletionRequestRepository creates a GormDeletionRequestRepository with a mocked SQL connection
func newMockDeletionRequestRepository(t *testing.T) (*GormDeletionRequestRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormDeletionRequestRepository(gormDB), mock, mockDB
}

func deletionRequestColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version", "company_id", "created_by",
		"record_type", "record_id", "requested_by", "is_validated", "validated_at", "validated_by",
	}
}

func TestGormDeletionRequestRepository_FindPendingByRecordIDs(t *testing.T) {
	t.Run("finds unvalidated requests for targeted records", func(t *testing.T) {
		repo, mock, mockDB := newMockDeletionRequestRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		recordID := uuid.New()
		requestID := uuid.New()
		requestedBy := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(deletionRequestColumns()).
			AddRow(requestID, now, now, 1, companyID, nil,
				"CLIENTS", recordID, requestedBy, false, nil, nil)

		mock.ExpectQuery(`SELECT \* FROM "deletion_requests" WHERE company_id = \$1 AND record_id IN \(\$2\) AND is_validated = \$3`).
			WithArgs(companyID, recordID, false).
			WillReturnRows(rows)

		requests, err := repo.FindPendingByRecordIDs(context.Background(), companyID, []uuid.UUID{recordID})

		assert.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, requestID, requests[0].ID)
		assert.Equal(t, deletion.RecordTypeClients, requests[0].RecordType)
		assert.True(t, requests[0].IsPending())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice without querying when no record IDs given", func(t *testing.T) {
		repo, mock, mockDB := newMockDeletionRequestRepository(t)
		defer mockDB.Close()

		requests, err := repo.FindPendingByRecordIDs(context.Background(), uuid.New(), nil)

		assert.NoError(t, err)
		assert.Empty(t, requests)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when all requests are validated", func(t *testing.T) {
		repo, mock, mockDB := newMockDeletionRequestRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		recordID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "deletion_requests" WHERE company_id = \$1 AND record_id IN \(\$2\) AND is_validated = \$3`).
			WithArgs(companyID, recordID, false).
			WillReturnRows(sqlmock.NewRows(deletionRequestColumns()))

		requests, err := repo.FindPendingByRecordIDs(context.Background(), companyID, []uuid.UUID{recordID})

		assert.NoError(t, err)
		assert.Empty(t, requests)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeletionRequestRepository_FindByIDForCompany(t *testing.T) {
	t.Run("returns nil for request of another company", func(t *testing.T) {
		repo, mock, mockDB := newMockDeletionRequestRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		requestID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "deletion_requests" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, requestID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		request, err := repo.FindByIDForCompany(context.Background(), companyID, requestID)

		assert.NoError(t, err)
		assert.Nil(t, request)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeletionRequestRepository_Delete(t *testing.T) {
	t.Run("deletes existing request", func(t *testing.T) {
		repo, mock, mockDB := newMockDeletionRequestRepository(t)
		defer mockDB.Close()

		requestID := uuid.New()

		mock.ExpectExec(`DELETE FROM "deletion_requests" WHERE id = \$1`).
			WithArgs(requestID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), requestID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockDeletionRequestRepository(t)
		defer mockDB.Close()

		requestID := uuid.New()

		mock.ExpectExec(`DELETE FROM "deletion_requests" WHERE id = \$1`).
			WithArgs(requestID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), requestID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
