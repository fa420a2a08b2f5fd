package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kleinsmk/Pode/internal/config"
	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/util"
)

type Store struct {
	db *gorm.DB
}

// New opens the database named by driver/dsn, then migrates the schema
// and seeds the default admin account on first run.
func New(ctx context.Context, driver, dsn string, cfg *config.Config) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedAdmin(cfg); err != nil {
		log.Printf("Warning: failed to seed admin user: %v", err)
	}

	return s, nil
}

// seedAdmin creates the initial admin account when the user table is
// empty. Without a configured password a random one is generated and
// printed exactly once.
func (s *Store) seedAdmin(cfg *config.Config) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var password string
	if cfg != nil {
		// Whitespace-only passwords count as unset.
		password = strings.TrimSpace(cfg.DefaultAdminPassword)
	}
	generated := password == ""
	if generated {
		random, err := util.CryptoRandomString(16)
		if err != nil {
			return err
		}
		password = random
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@localhost",
		PasswordHash: string(hash),
		Role:         "admin",
		AuthSource:   "local",
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	if generated {
		log.Printf("Created default user: admin / %s (role: admin)", password)
	} else {
		log.Printf("Created default user: admin (password from config, role: admin)")
	}
	return nil
}

// User operations

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// GetUserByExternalID finds a user by their external ID and auth source
func (s *Store) GetUserByExternalID(externalID, authSource string) (*models.User, error) {
	var user models.User
	err := s.db.Where("external_id = ? AND auth_source = ?", externalID, authSource).
		First(&user).
		Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) UpdateUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *Store) DeleteUser(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.User{}).Error
}

// CountUsers returns the total number of registered users.
func (s *Store) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// UpsertExternalUser creates or updates a user record from an external
// authentication source, keyed by (externalID, authSource). A username
// owned by a different account yields ErrUsernameConflict.
func (s *Store) UpsertExternalUser(
	username, externalID, authSource, email, fullName string,
) (*models.User, error) {
	var user models.User

	err := s.db.Where("external_id = ? AND auth_source = ?", externalID, authSource).
		First(&user).
		Error

	if err == nil {
		if user.Username != username {
			var conflicting models.User
			conflictErr := s.db.Where("username = ? AND id != ?", username, user.ID).
				First(&conflicting).
				Error
			if conflictErr == nil {
				return nil, ErrUsernameConflict
			}
			if !errors.Is(conflictErr, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", conflictErr)
			}
		}

		user.Username = username
		user.Email = email
		user.FullName = fullName
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to update external user: %w", err)
		}
		return &user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query external user: %w", err)
	}

	var existing models.User
	err = s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user = models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "", // external users carry no local password
		Role:         "user",
		ExternalID:   externalID,
		AuthSource:   authSource,
		Email:        email,
		FullName:     fullName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create external user: %w", err)
	}

	return &user, nil
}

// Audit log operations

// CreateAuditLog writes a single audit entry immediately.
func (s *Store) CreateAuditLog(entry *models.AuditLog) error {
	return s.db.Create(entry).Error
}

// CreateAuditLogBatch writes a batch of audit entries in one round trip.
func (s *Store) CreateAuditLogBatch(entries []*models.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.CreateInBatches(entries, 100).Error
}

// GetAuditLogsPaginated returns audit entries matching filters, newest
// first, one page at a time.
func (s *Store) GetAuditLogsPaginated(
	params PaginationParams,
	filters AuditLogFilters,
) ([]models.AuditLog, PaginationResult, error) {
	var total int64
	if err := applyAuditFilters(s.db.Model(&models.AuditLog{}), filters).
		Count(&total).
		Error; err != nil {
		return nil, PaginationResult{}, err
	}

	result := CalculatePagination(total, params.Page, params.PageSize)

	var logs []models.AuditLog
	err := applyAuditFilters(s.db.Model(&models.AuditLog{}), filters).
		Order("event_time DESC").
		Limit(params.PageSize).
		Offset((result.CurrentPage - 1) * params.PageSize).
		Find(&logs).
		Error
	if err != nil {
		return nil, PaginationResult{}, err
	}
	return logs, result, nil
}

// GetAuditLogStats aggregates audit entries within [start, end].
func (s *Store) GetAuditLogStats(start, end time.Time) (AuditLogStats, error) {
	stats := AuditLogStats{
		EventsByType:     make(map[models.EventType]int64),
		EventsBySeverity: make(map[models.EventSeverity]int64),
	}

	inRange := func() *gorm.DB {
		return s.db.Model(&models.AuditLog{}).
			Where("event_time >= ? AND event_time <= ?", start, end)
	}

	if err := inRange().Count(&stats.TotalEvents).Error; err != nil {
		return stats, err
	}
	if err := inRange().Where("success = ?", true).Count(&stats.SuccessCount).Error; err != nil {
		return stats, err
	}
	stats.FailureCount = stats.TotalEvents - stats.SuccessCount

	var byType []struct {
		EventType models.EventType
		Count     int64
	}
	if err := inRange().
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Scan(&byType).
		Error; err != nil {
		return stats, err
	}
	for _, row := range byType {
		stats.EventsByType[row.EventType] = row.Count
	}

	var bySeverity []struct {
		Severity models.EventSeverity
		Count    int64
	}
	if err := inRange().
		Select("severity, COUNT(*) as count").
		Group("severity").
		Scan(&bySeverity).
		Error; err != nil {
		return stats, err
	}
	for _, row := range bySeverity {
		stats.EventsBySeverity[row.Severity] = row.Count
	}

	return stats, nil
}

// DeleteOldAuditLogs removes entries whose event time precedes cutoff
// and reports how many were deleted.
func (s *Store) DeleteOldAuditLogs(cutoff time.Time) (int64, error) {
	res := s.db.Where("event_time < ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}

// Health checks the database connection
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB returns the underlying GORM database connection (for transactions)
func (s *Store) DB() *gorm.DB {
	return s.db
}

// translateNotFound keeps gorm an implementation detail of this
// package; callers match on ErrRecordNotFound.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
