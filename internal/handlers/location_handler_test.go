package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/workcafe/workcafe-api/internal/config"
	"github.com/workcafe/workcafe-api/internal/infra/repository"
	"github.com/workcafe/workcafe-api/internal/middleware"
)

func TestLocationVerifyRecordsAttestation(t *testing.T) {
	gdb, mock := mockDB(t)
	h := NewLocationHandler(gdb, &config.Config{}, repository.NewVenueGormRepository(gdb),
		nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(`SELECT \* FROM "venues"`).
		WithArgs(uint(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(3, "approved"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "verifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	r := identityRouter(http.MethodPost, "/locations/:id/verify",
		middleware.Identity{UserID: 7, Role: "user"}, h.Verify)

	req := httptest.NewRequest(http.MethodPost, "/locations/3/verify",
		strings.NewReader(`{"verified_wifi":true,"notes":"fast wifi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"verified_wifi":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
