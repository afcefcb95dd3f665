package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"quejas/backend/internal/models"

	"gorm.io/gorm"
)

// Sentinel errors the service layer matches on. Anything else coming out of
// this package is an infrastructure failure.
var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrComplaintNotFound = errors.New("complaint not found")
)

// Storage is the persistence contract the rest of the application depends
// on. The production implementation is GORM over Postgres (or a local
// sqlite file); tests substitute mocks.
type Storage interface {
	ListEntities(ctx context.Context, activeOnly bool) ([]models.Entity, error)
	GetEntityByID(ctx context.Context, id uint) (*models.Entity, error)
	FindEntityByName(ctx context.Context, name string, exact bool) (*models.Entity, error)

	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaintByID(ctx context.Context, id uint) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.ComplaintWithEntity, error)
	ListComplaintsByEntity(ctx context.Context, entityID uint) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id uint, status models.Status) (bool, error)
	DeleteComplaint(ctx context.Context, id uint) (bool, error)
	CountComplaints(ctx context.Context) (int64, error)

	AggregateByEntity(ctx context.Context) ([]models.EntityCount, error)
	AggregateByStatus(ctx context.Context) ([]models.StatusCount, error)
	AggregateByMonth(ctx context.Context, months int) ([]models.MonthCount, error)
	GetStats(ctx context.Context) (*models.Stats, error)

	HealthCheck(ctx context.Context) bool
	SeedEntities(ctx context.Context) error
}

// Service is the GORM-backed Storage implementation.
type Service struct {
	DB *gorm.DB
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ListEntities returns entities ordered by name ascending. With activeOnly
// set, deactivated entities are excluded (they stay visible in joins).
func (s *Service) ListEntities(ctx context.Context, activeOnly bool) ([]models.Entity, error) {
	var entities []models.Entity
	q := s.DB.WithContext(ctx).Order("name asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&entities).Error; err != nil {
		log.Printf("ERROR: Failed to list entities: %v", err)
		return nil, err
	}
	return entities, nil
}

func (s *Service) GetEntityByID(ctx context.Context, id uint) (*models.Entity, error) {
	var entity models.Entity
	err := s.DB.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get entity %d: %v", id, err)
		return nil, err
	}
	return &entity, nil
}

// likeEscaper neutralizes LIKE metacharacters in user-typed references so
// a stray % or _ cannot widen the lookup.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindEntityByName resolves an entity by name, case-insensitively. With
// exact unset it matches a substring and the first hit in name order wins —
// a deliberately lenient policy for user-typed references, not full-text
// search.
func (s *Service) FindEntityByName(ctx context.Context, name string, exact bool) (*models.Entity, error) {
	var entity models.Entity
	pattern := likeEscaper.Replace(strings.ToLower(strings.TrimSpace(name)))
	if !exact {
		pattern = "%" + pattern + "%"
	}
	err := s.DB.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("name asc").
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to find entity by name %q: %v", name, err)
		return nil, err
	}
	return &entity, nil
}

// CreateComplaint inserts the complaint and fills in its id, default status
// and timestamps. The foreign key constraint is the backstop for entity
// references the service layer failed to pre-check.
func (s *Service) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if c.Status == "" {
		c.Status = models.StatusPending
	}

	result := s.DB.WithContext(ctx).Create(c)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save complaint for entity %d: %v", c.EntityID, result.Error)
		return result.Error
	}
	return nil
}

func (s *Service) GetComplaintByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.WithContext(ctx).First(&complaint, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %d: %v", id, err)
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints returns every complaint, newest first, each annotated with
// its entity name via a join.
func (s *Service) ListComplaints(ctx context.Context) ([]models.ComplaintWithEntity, error) {
	var rows []models.ComplaintWithEntity
	err := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("complaints.*, entities.name AS entity_name").
		Joins("JOIN entities ON entities.id = complaints.entity_id").
		Order("complaints.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return rows, nil
}

func (s *Service) ListComplaintsByEntity(ctx context.Context, entityID uint) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for entity %d: %v", entityID, err)
		return nil, err
	}
	return complaints, nil
}

// UpdateStatus sets the status of one complaint and refreshes updated_at.
// It reports false when the id does not exist. Status values are validated
// by the caller before this point.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status models.Status) (bool, error) {
	result := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		log.Printf("ERROR: Failed to update status of complaint %d: %v", id, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Service) DeleteComplaint(ctx context.Context, id uint) (bool, error) {
	result := s.DB.WithContext(ctx).Delete(&models.Complaint{}, id)
	if result.Error != nil {
		log.Printf("ERROR: Failed to delete complaint %d: %v", id, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Service) CountComplaints(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Complaint{}).Count(&count).Error; err != nil {
		log.Printf("ERROR: Failed to count complaints: %v", err)
		return 0, err
	}
	return count, nil
}

// AggregateByEntity counts complaints per entity, ordered by count
// descending. Left join semantics: entities with zero complaints are
// included.
func (s *Service) AggregateByEntity(ctx context.Context) ([]models.EntityCount, error) {
	var rows []models.EntityCount
	err := s.DB.WithContext(ctx).
		Model(&models.Entity{}).
		Select("entities.name AS entity_name, COUNT(complaints.id) AS count").
		Joins("LEFT JOIN complaints ON complaints.entity_id = entities.id").
		Group("entities.id, entities.name").
		Order("count DESC, entities.name ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to aggregate complaints by entity: %v", err)
		return nil, err
	}
	return rows, nil
}

func (s *Service) AggregateByStatus(ctx context.Context) ([]models.StatusCount, error) {
	var rows []models.StatusCount
	err := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to aggregate complaints by status: %v", err)
		return nil, err
	}
	return rows, nil
}

// AggregateByMonth buckets complaints per calendar month (YYYY-MM), newest
// month first, limited to the requested number of buckets. The bucketing
// expression is picked per dialect: to_char on Postgres, strftime on sqlite.
func (s *Service) AggregateByMonth(ctx context.Context, months int) ([]models.MonthCount, error) {
	expr := "to_char(created_at, 'YYYY-MM')"
	if s.DB.Dialector.Name() == "sqlite" {
		expr = "strftime('%Y-%m', created_at)"
	}

	var rows []models.MonthCount
	err := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select(fmt.Sprintf("%s AS month, COUNT(*) AS count", expr)).
		Group(expr).
		Order("month DESC").
		Limit(months).
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to aggregate complaints by month: %v", err)
		return nil, err
	}
	return rows, nil
}

// GetStats assembles the full report bundle served by /api/stats.
func (s *Service) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}

	var err error
	if stats.TotalComplaints, err = s.CountComplaints(ctx); err != nil {
		return nil, err
	}
	if err = s.DB.WithContext(ctx).Model(&models.Entity{}).Count(&stats.TotalEntities).Error; err != nil {
		log.Printf("ERROR: Failed to count entities: %v", err)
		return nil, err
	}
	if err = s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("status = ?", models.StatusPending).
		Count(&stats.PendingCount).Error; err != nil {
		log.Printf("ERROR: Failed to count pending complaints: %v", err)
		return nil, err
	}
	if stats.ByStatus, err = s.AggregateByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.ByEntity, err = s.AggregateByEntity(ctx); err != nil {
		return nil, err
	}
	if stats.ByMonth, err = s.AggregateByMonth(ctx, 12); err != nil {
		return nil, err
	}
	return stats, nil
}

// HealthCheck verifies the connection is alive without mutating data.
func (s *Service) HealthCheck(ctx context.Context) bool {
	sqlDB, err := s.DB.DB()
	if err != nil {
		log.Printf("ERROR: Failed to access underlying connection: %v", err)
		return false
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Printf("ERROR: Database ping failed: %v", err)
		return false
	}
	return true
}
