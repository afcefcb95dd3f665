package complaint_test

import (
	"context"

	"quejas/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ListEntities(ctx context.Context, activeOnly bool) ([]models.Entity, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Entity), args.Error(1)
}

func (m *MockStorage) GetEntityByID(ctx context.Context, id uint) (*models.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func (m *MockStorage) FindEntityByName(ctx context.Context, name string, exact bool) (*models.Entity, error) {
	args := m.Called(ctx, name, exact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entity), args.Error(1)
}

func (m *MockStorage) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(ctx context.Context, id uint) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints(ctx context.Context) ([]models.ComplaintWithEntity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ComplaintWithEntity), args.Error(1)
}

func (m *MockStorage) ListComplaintsByEntity(ctx context.Context, entityID uint) ([]models.Complaint, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateStatus(ctx context.Context, id uint, status models.Status) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) DeleteComplaint(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CountComplaints(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) AggregateByEntity(ctx context.Context) ([]models.EntityCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.EntityCount), args.Error(1)
}

func (m *MockStorage) AggregateByStatus(ctx context.Context) ([]models.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *MockStorage) AggregateByMonth(ctx context.Context, months int) ([]models.MonthCount, error) {
	args := m.Called(ctx, months)
	return args.Get(0).([]models.MonthCount), args.Error(1)
}

func (m *MockStorage) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *MockStorage) HealthCheck(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockStorage) SeedEntities(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
