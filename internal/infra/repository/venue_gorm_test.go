package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/models"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_review_venue_user"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert review: %w", dup)))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
	assert.False(t, IsUniqueViolation(nil))
}

// A submission that fails partway through must leave nothing behind: the
// whole multi-table insert rides one transaction.
func TestCreateSubmissionRollsBackOnAmenitiesFailure(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewVenueGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "venues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "venue_amenities"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	id, err := repo.CreateSubmission(context.Background(), &domain.Submission{
		Venue: models.Venue{
			Name:        "Doomed Cafe",
			Address:     "1 Nowhere St",
			City:        "Lisbon",
			Country:     "PT",
			Status:      string(domain.StatusPending),
			SubmittedBy: 5,
		},
		Amenities: models.VenueAmenities{HasWifi: true},
		Reason:    "Initial submission",
	})

	assert.Error(t, err)
	assert.Zero(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
