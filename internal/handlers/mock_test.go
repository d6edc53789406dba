package handlers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/middleware"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock
}

// identityRouter mounts a single handler behind a stub that injects the
// caller identity, standing in for RequireAuth.
func identityRouter(method, path string, identity middleware.Identity, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Handle(method, path, func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, identity)
	}, h)
	return r
}
