package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/models"
)

// getTestConfig returns a minimal config for testing
func getTestConfig() *config.Config {
	return &config.Config{
		DefaultAdminPassword: "", // Use random password in tests
	}
}

// TestStoreWithSQLite tests store operations with SQLite
func TestStoreWithSQLite(t *testing.T) {
	testBasicOperations(t, "sqlite", nil)
}

// TestStoreWithPostgres tests store operations with PostgreSQL
func TestStoreWithPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	// Recover from panic if Docker is not available
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping PostgreSQL test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("Skipping PostgreSQL test: Docker not available (%v)", err)
		return
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	testBasicOperations(t, "postgres", pgContainer)
}

// createFreshStore creates a new store instance for test isolation.
// For SQLite, each call creates a fresh :memory: database. For
// PostgreSQL, each call creates a uniquely-named database in the
// container.
func createFreshStore(t *testing.T, driver string, pgContainer *postgres.PostgresContainer) *Store {
	t.Helper()

	var dsn string
	switch driver {
	case "sqlite":
		dsn = ":memory:"
	case "postgres":
		dbName := "test_" + uuid.New().String()[:8]

		ctx := context.Background()

		createDBCmd := fmt.Sprintf("CREATE DATABASE %s", dbName)
		_, _, err := pgContainer.Exec(
			ctx,
			[]string{"psql", "-U", "testuser", "-d", "testdb", "-c", createDBCmd},
		)
		require.NoError(t, err)

		host, err := pgContainer.Host(ctx)
		require.NoError(t, err)
		port, err := pgContainer.MappedPort(ctx, "5432")
		require.NoError(t, err)
		dsn = fmt.Sprintf(
			"host=%s port=%s user=testuser password=testpass dbname=%s sslmode=disable",
			host, port.Port(), dbName,
		)

		t.Cleanup(func() {
			dropDBCmd := fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)
			_, _, _ = pgContainer.Exec(
				context.Background(),
				[]string{"psql", "-U", "testuser", "-d", "testdb", "-c", dropDBCmd},
			)
		})
	default:
		t.Fatalf("unsupported driver: %s", driver)
	}

	store, err := New(context.Background(), driver, dsn, getTestConfig())
	require.NoError(t, err)
	require.NotNil(t, store)

	return store
}

// newAuditEntry builds a complete audit entry anchored at the given time
func newAuditEntry(
	eventType models.EventType,
	severity models.EventSeverity,
	success bool,
	at time.Time,
) *models.AuditLog {
	return &models.AuditLog{
		ID:            uuid.New().String(),
		EventType:     eventType,
		EventTime:     at,
		Severity:      severity,
		ActorUsername: "admin",
		ActorIP:       "203.0.113.9",
		ResourceType:  models.ResourceMethod,
		ResourceName:  "basic",
		Action:        "authenticate",
		Success:       success,
	}
}

// testBasicOperations tests basic CRUD operations on the store.
// Each subtest creates a fresh store instance for isolation.
func testBasicOperations(t *testing.T, driver string, pgContainer *postgres.PostgresContainer) {
	t.Run("SeededAdmin", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		admin, err := store.GetUserByUsername("admin")
		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Role)
		assert.Equal(t, "local", admin.AuthSource)
		assert.NotEmpty(t, admin.PasswordHash)

		count, err := store.CountUsers()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("CreateAndGetUser", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		user := &models.User{
			ID:           uuid.New().String(),
			Username:     "testuser",
			Email:        "testuser@example.com",
			PasswordHash: "hashedpassword",
			Role:         "user",
		}
		err := store.CreateUser(user)
		require.NoError(t, err)

		byUsername, err := store.GetUserByUsername("testuser")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byUsername.ID)

		byID, err := store.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "testuser", byID.Username)

		byEmail, err := store.GetUserByEmail("testuser@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("GetUserNotFound", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		_, err := store.GetUserByUsername("ghost")
		assert.ErrorIs(t, err, ErrRecordNotFound)

		_, err = store.GetUserByID(uuid.New().String())
		assert.ErrorIs(t, err, ErrRecordNotFound)

		_, err = store.GetUserByExternalID("ext-missing", "http_api")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("UpdateUser", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		user := &models.User{
			ID:           uuid.New().String(),
			Username:     "jdoe",
			Email:        "jdoe@example.com",
			PasswordHash: "hashedpassword",
			Role:         "user",
		}
		require.NoError(t, store.CreateUser(user))

		user.FullName = "John Doe"
		require.NoError(t, store.UpdateUser(user))

		updated, err := store.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", updated.FullName)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		user := &models.User{
			ID:           uuid.New().String(),
			Username:     "shortlived",
			Email:        "shortlived@example.com",
			PasswordHash: "hashedpassword",
			Role:         "user",
		}
		require.NoError(t, store.CreateUser(user))
		require.NoError(t, store.DeleteUser(user.ID))

		_, err := store.GetUserByID(user.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)

		// Only the seeded admin remains.
		count, err := store.CountUsers()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("CreateAndQueryAuditLogs", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		base := time.Now().Add(-1 * time.Hour)
		entry := newAuditEntry(models.EventAuthenticationSuccess, models.SeverityInfo, true, base)
		entry.Details = models.AuditDetails{"method": "basic"}
		require.NoError(t, store.CreateAuditLog(entry))
		require.NoError(t, store.CreateAuditLog(
			newAuditEntry(models.EventAuthenticationFailure, models.SeverityWarning, false, base.Add(time.Minute)),
		))
		require.NoError(t, store.CreateAuditLog(
			newAuditEntry(models.EventLogout, models.SeverityInfo, true, base.Add(2*time.Minute)),
		))

		logs, page, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, logs, 3)

		// Newest first.
		assert.Equal(t, models.EventLogout, logs[0].EventType)
		assert.Equal(t, models.EventAuthenticationSuccess, logs[2].EventType)
		assert.Equal(t, "basic", logs[2].Details["method"])
	})

	t.Run("AuditLogPagination", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		base := time.Now().Add(-1 * time.Hour)
		for i := 0; i < 25; i++ {
			entry := newAuditEntry(
				models.EventAuthenticationSuccess,
				models.SeverityInfo,
				true,
				base.Add(time.Duration(i)*time.Second),
			)
			require.NoError(t, store.CreateAuditLog(entry))
		}

		logs, page, err := store.GetAuditLogsPaginated(
			NewPaginationParams(2, 10, ""),
			AuditLogFilters{},
		)
		require.NoError(t, err)
		assert.Len(t, logs, 10)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 2, page.CurrentPage)
		assert.True(t, page.HasPrev)
		assert.True(t, page.HasNext)

		logs, page, err = store.GetAuditLogsPaginated(
			NewPaginationParams(3, 10, ""),
			AuditLogFilters{},
		)
		require.NoError(t, err)
		assert.Len(t, logs, 5)
		assert.False(t, page.HasNext)
	})

	t.Run("AuditLogFilters", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		base := time.Now().Add(-1 * time.Hour)
		success := newAuditEntry(models.EventAuthenticationSuccess, models.SeverityInfo, true, base)
		failure := newAuditEntry(models.EventAuthenticationFailure, models.SeverityWarning, false, base.Add(time.Minute))
		failure.ActorUsername = "mallory"
		parse := newAuditEntry(models.EventParseFailure, models.SeverityWarning, false, base.Add(2*time.Minute))
		parse.Action = "parse credentials"
		require.NoError(t, store.CreateAuditLogBatch([]*models.AuditLog{success, failure, parse}))

		byType, _, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{EventType: models.EventAuthenticationFailure},
		)
		require.NoError(t, err)
		require.Len(t, byType, 1)
		assert.Equal(t, "mallory", byType[0].ActorUsername)

		failedOnly := false
		bySuccess, _, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{Success: &failedOnly},
		)
		require.NoError(t, err)
		assert.Len(t, bySuccess, 2)

		byActor, _, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{ActorUsername: "mallory"},
		)
		require.NoError(t, err)
		assert.Len(t, byActor, 1)

		bySearch, _, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{Search: "parse"},
		)
		require.NoError(t, err)
		require.Len(t, bySearch, 1)
		assert.Equal(t, models.EventParseFailure, bySearch[0].EventType)

		byWindow, _, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{StartTime: base.Add(30 * time.Second)},
		)
		require.NoError(t, err)
		assert.Len(t, byWindow, 2)
	})

	t.Run("AuditLogBatch", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		base := time.Now().Add(-1 * time.Hour)
		entries := make([]*models.AuditLog, 0, 120)
		for i := 0; i < 120; i++ {
			entries = append(entries, newAuditEntry(
				models.EventAuthenticationSuccess,
				models.SeverityInfo,
				true,
				base.Add(time.Duration(i)*time.Second),
			))
		}
		require.NoError(t, store.CreateAuditLogBatch(entries))

		// Empty batches are a no-op, not an error.
		require.NoError(t, store.CreateAuditLogBatch(nil))

		_, page, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(120), page.Total)
	})

	t.Run("AuditLogStats", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		base := time.Now().Add(-1 * time.Hour)
		entries := []*models.AuditLog{
			newAuditEntry(models.EventAuthenticationSuccess, models.SeverityInfo, true, base),
			newAuditEntry(models.EventAuthenticationSuccess, models.SeverityInfo, true, base.Add(time.Minute)),
			newAuditEntry(models.EventAuthenticationSuccess, models.SeverityInfo, true, base.Add(2*time.Minute)),
			newAuditEntry(models.EventAuthenticationFailure, models.SeverityWarning, false, base.Add(3*time.Minute)),
			newAuditEntry(models.EventAuthenticationFailure, models.SeverityWarning, false, base.Add(4*time.Minute)),
			newAuditEntry(models.EventParseFailure, models.SeverityError, false, base.Add(5*time.Minute)),
			// Outside the queried window.
			newAuditEntry(models.EventLogout, models.SeverityInfo, true, base.Add(-2*time.Hour)),
		}
		require.NoError(t, store.CreateAuditLogBatch(entries))

		stats, err := store.GetAuditLogStats(base.Add(-time.Minute), base.Add(10*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(6), stats.TotalEvents)
		assert.Equal(t, int64(3), stats.SuccessCount)
		assert.Equal(t, int64(3), stats.FailureCount)
		assert.Equal(t, int64(3), stats.EventsByType[models.EventAuthenticationSuccess])
		assert.Equal(t, int64(2), stats.EventsByType[models.EventAuthenticationFailure])
		assert.Equal(t, int64(1), stats.EventsByType[models.EventParseFailure])
		assert.Equal(t, int64(3), stats.EventsBySeverity[models.SeverityInfo])
		assert.Equal(t, int64(2), stats.EventsBySeverity[models.SeverityWarning])
		assert.Equal(t, int64(1), stats.EventsBySeverity[models.SeverityError])
	})

	t.Run("DeleteOldAuditLogs", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		cutoff := time.Now().Add(-24 * time.Hour)
		old := cutoff.Add(-time.Hour)
		recent := cutoff.Add(time.Hour)
		require.NoError(t, store.CreateAuditLogBatch([]*models.AuditLog{
			newAuditEntry(models.EventAuthenticationSuccess, models.SeverityInfo, true, old),
			newAuditEntry(models.EventAuthenticationFailure, models.SeverityWarning, false, old.Add(time.Minute)),
			newAuditEntry(models.EventLogout, models.SeverityInfo, true, recent),
		}))

		deleted, err := store.DeleteOldAuditLogs(cutoff)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		_, page, err := store.GetAuditLogsPaginated(
			NewPaginationParams(1, 10, ""),
			AuditLogFilters{},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		err := store.Health()
		assert.NoError(t, err)
	})
}

// TestDriverFactory tests the driver factory pattern
func TestDriverFactory(t *testing.T) {
	tests := []struct {
		name        string
		driver      string
		dsn         string
		expectError bool
	}{
		{
			name:        "SQLite valid",
			driver:      "sqlite",
			dsn:         ":memory:",
			expectError: false,
		},
		{
			name:        "Unsupported driver",
			driver:      "mysql",
			dsn:         "user:pass@tcp(localhost:3306)/dbname",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialector, err := GetDialector(tt.driver, tt.dsn)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, dialector)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, dialector)
			}
		})
	}
}

// TestRegisterDriver tests registering custom drivers
func TestRegisterDriver(t *testing.T) {
	customDriverCalled := false
	RegisterDriver("custom", func(dsn string) gorm.Dialector {
		customDriverCalled = true
		return nil
	})

	dialector, err := GetDialector("custom", "test-dsn")
	assert.NoError(t, err)
	assert.True(t, customDriverCalled)
	assert.Nil(t, dialector) // Our mock returns nil
}

// TestUpsertExternalUser_Success_NewUser tests successful creation of new external user
func TestUpsertExternalUser_Success_NewUser(t *testing.T) {
	store, err := New(context.Background(), "sqlite", ":memory:", getTestConfig())
	require.NoError(t, err)

	user, err := store.UpsertExternalUser(
		"alice",
		"ext-user-456",
		"http_api",
		"alice@example.com",
		"Alice Wonder",
	)

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "ext-user-456", user.ExternalID)
	assert.Equal(t, "http_api", user.AuthSource)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice Wonder", user.FullName)
	assert.Equal(t, "user", user.Role)
	assert.Empty(t, user.PasswordHash)
}

// TestUpsertExternalUser_Success_UpdateExisting tests successful update of existing external user
func TestUpsertExternalUser_Success_UpdateExisting(t *testing.T) {
	store, err := New(context.Background(), "sqlite", ":memory:", getTestConfig())
	require.NoError(t, err)

	user, err := store.UpsertExternalUser(
		"bob",
		"ext-user-789",
		"http_api",
		"bob@example.com",
		"Bob Builder",
	)
	require.NoError(t, err)
	originalID := user.ID

	updatedUser, err := store.UpsertExternalUser(
		"bob",
		"ext-user-789", // same external ID
		"http_api",
		"bob.builder@example.com", // updated email
		"Robert Builder",          // updated name
	)

	require.NoError(t, err)
	assert.Equal(t, originalID, updatedUser.ID) // ID unchanged
	assert.Equal(t, "bob", updatedUser.Username)
	assert.Equal(t, "bob.builder@example.com", updatedUser.Email)
	assert.Equal(t, "Robert Builder", updatedUser.FullName)
}

// TestUpsertExternalUser_UsernameConflict_OnCreate tests username conflict detection when creating new users
func TestUpsertExternalUser_UsernameConflict_OnCreate(t *testing.T) {
	store, err := New(context.Background(), "sqlite", ":memory:", getTestConfig())
	require.NoError(t, err)

	localUser := &models.User{
		ID:           uuid.New().String(),
		Username:     "john",
		Email:        "john.local@example.com",
		PasswordHash: "hashedpassword",
		Role:         "user",
		AuthSource:   "local",
	}
	require.NoError(t, store.CreateUser(localUser))

	// External account claiming an existing local username must fail.
	_, err = store.UpsertExternalUser(
		"john",
		"ext-user-123",
		"http_api",
		"john@example.com",
		"John Doe",
	)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUsernameConflict)
}

// TestUpsertExternalUser_UsernameConflict_OnUpdate tests username conflict when updating existing user
func TestUpsertExternalUser_UsernameConflict_OnUpdate(t *testing.T) {
	store, err := New(context.Background(), "sqlite", ":memory:", getTestConfig())
	require.NoError(t, err)

	user1, err := store.UpsertExternalUser(
		"john",
		"ext-user-1",
		"http_api",
		"john@example.com",
		"John Doe",
	)
	require.NoError(t, err)
	require.Equal(t, "john", user1.Username)

	user2, err := store.UpsertExternalUser(
		"jane",
		"ext-user-2",
		"http_api",
		"jane@example.com",
		"Jane Smith",
	)
	require.NoError(t, err)
	require.Equal(t, "jane", user2.Username)

	_, err = store.UpsertExternalUser(
		"john",       // trying to change to john
		"ext-user-2", // same external ID as user2
		"http_api",
		"jane@example.com",
		"Jane Smith",
	)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUsernameConflict)

	// Verify user2's username unchanged
	user2Check, err := store.GetUserByExternalID("ext-user-2", "http_api")
	require.NoError(t, err)
	assert.Equal(t, "jane", user2Check.Username)
}

// TestUpsertExternalUser_SameUserKeepsUsername tests that same user can keep their username
func TestUpsertExternalUser_SameUserKeepsUsername(t *testing.T) {
	store, err := New(context.Background(), "sqlite", ":memory:", getTestConfig())
	require.NoError(t, err)

	user, err := store.UpsertExternalUser(
		"john",
		"ext-user-123",
		"http_api",
		"john@example.com",
		"John Doe",
	)
	require.NoError(t, err)
	require.Equal(t, "john", user.Username)

	updatedUser, err := store.UpsertExternalUser(
		"john", // same username
		"ext-user-123",
		"http_api",
		"john.doe@example.com", // updated email
		"John A. Doe",          // updated name
	)
	require.NoError(t, err)
	assert.Equal(t, "john", updatedUser.Username)
	assert.Equal(t, "john.doe@example.com", updatedUser.Email)
	assert.Equal(t, "John A. Doe", updatedUser.FullName)
}

// TestDefaultAdminPassword_WhitespaceHandling tests that whitespace-only passwords are treated as empty
func TestDefaultAdminPassword_WhitespaceHandling(t *testing.T) {
	tests := []struct {
		name                 string
		defaultAdminPassword string
		shouldUseConfigured  bool
	}{
		{
			name:                 "valid password",
			defaultAdminPassword: "MyPassword123",
			shouldUseConfigured:  true,
		},
		{
			name:                 "password with leading/trailing spaces",
			defaultAdminPassword: "  MyPassword123  ",
			shouldUseConfigured:  true,
		},
		{
			name:                 "empty string",
			defaultAdminPassword: "",
			shouldUseConfigured:  false,
		},
		{
			name:                 "only spaces",
			defaultAdminPassword: "   ",
			shouldUseConfigured:  false,
		},
		{
			name:                 "mixed whitespace",
			defaultAdminPassword: " \t\n\r ",
			shouldUseConfigured:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				DefaultAdminPassword: tt.defaultAdminPassword,
			}

			store, err := New(context.Background(), "sqlite", ":memory:", cfg)
			require.NoError(t, err)
			require.NotNil(t, store)

			admin, err := store.GetUserByUsername("admin")
			require.NoError(t, err)
			require.NotNil(t, admin)

			if tt.shouldUseConfigured {
				err = bcrypt.CompareHashAndPassword(
					[]byte(admin.PasswordHash),
					[]byte(strings.TrimSpace(tt.defaultAdminPassword)),
				)
				assert.NoError(t, err, "configured password should work after trimming")
			} else {
				// A random password was generated; the whitespace-only
				// input must not authenticate.
				assert.NotEmpty(t, admin.PasswordHash)

				if tt.defaultAdminPassword != "" {
					err = bcrypt.CompareHashAndPassword(
						[]byte(admin.PasswordHash),
						[]byte(tt.defaultAdminPassword),
					)
					assert.Error(t, err, "whitespace-only password should not work")
				}
			}
		})
	}
}

// BenchmarkStoreOperations benchmarks basic store operations
func BenchmarkStoreOperations(b *testing.B) {
	store, err := New(context.Background(), "sqlite", ":memory:", getTestConfig())
	require.NoError(b, err)

	b.Run("CreateUser", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			user := &models.User{
				ID:           uuid.New().String(),
				Username:     fmt.Sprintf("user%d", i),
				Email:        fmt.Sprintf("user%d@example.com", i),
				PasswordHash: "hashedpassword",
				Role:         "user",
			}
			_ = store.CreateUser(user)
		}
	})

	b.Run("GetUserByUsername", func(b *testing.B) {
		user := &models.User{
			ID:           uuid.New().String(),
			Username:     "benchuser",
			Email:        "benchuser@example.com",
			PasswordHash: "hashedpassword",
			Role:         "user",
		}
		_ = store.CreateUser(user)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = store.GetUserByUsername("benchuser")
		}
	})

	b.Run("CreateAuditLog", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			entry := newAuditEntry(
				models.EventAuthenticationSuccess,
				models.SeverityInfo,
				true,
				time.Now(),
			)
			_ = store.CreateAuditLog(entry)
		}
	})
}
