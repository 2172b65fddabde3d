package auth

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/auth"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/paywise-hr/payroll-backend-go/internal/repository/postgresql"
)

var testAuthDB *database.DB

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, e audit.Entry) {}

func authTestInit(t *testing.T) {
	t.Helper()
	if testAuthDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	var err error
	testAuthDB, err = database.NewPostgreSQLDB(dsn, database.PoolOptions{})
	require.NoError(t, err, "failed to connect to test database")
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	t.Helper()
	for _, table := range []string{"admins", "employees"} {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createAuthTestAdmin(t *testing.T, ctx context.Context, username, password string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	_, err := testAuthDB.Exec(ctx, `
		INSERT INTO admins (username, password_hash, full_name)
		VALUES ($1, $2, 'Test Admin')
	`, username, string(hash))
	require.NoError(t, err)
}

func createAuthTestEmployee(t *testing.T, ctx context.Context, username, password string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	_, err := testAuthDB.Exec(ctx, `
		INSERT INTO employees (username, password_hash, full_name, salary, created_by, updated_by)
		VALUES ($1, $2, 'Test Employee', 3200.00, 'test', 'test')
	`, username, string(hash))
	require.NoError(t, err)
}

func newTestAuthService() auth.AuthService {
	return NewAuthService(
		postgresql.NewAdminRepository(testAuthDB),
		postgresql.NewEmployeeRepository(testAuthDB),
		jwt.NewJWTService(testSecret, testAccessExp),
		noopRecorder{},
	)
}

func TestAuthService_Login_Admin(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)
	createAuthTestAdmin(t, ctx, "admin", "admin123")

	svc := newTestAuthService()

	result, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "admin", result.Role)
}

func TestAuthService_Login_Employee(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)
	createAuthTestEmployee(t, ctx, "worker", "secret123")

	svc := newTestAuthService()

	result, err := svc.Login(ctx, auth.LoginRequest{Username: "worker", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "employee", result.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)
	createAuthTestEmployee(t, ctx, "worker", "secret123")

	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "worker", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{})

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}
