package testhelpers

import (
	"context"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDForUpdate(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, userID int64, username string, initialBalance int64) (*entities.User, error) {
	args := m.Called(ctx, userID, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance int64) error {
	args := m.Called(ctx, userID, newBalance)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementHandsWon(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementParlaysWon(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.Transaction, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

// MockTableRepository is a mock implementation of TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, table *entities.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) GetByID(ctx context.Context, tableID string) (*entities.Table, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Table), args.Error(1)
}

func (m *MockTableRepository) GetByIDForUpdate(ctx context.Context, tableID string) (*entities.Table, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Table), args.Error(1)
}

func (m *MockTableRepository) ListOpen(ctx context.Context) ([]*entities.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Table), args.Error(1)
}

func (m *MockTableRepository) UpdateStatus(ctx context.Context, tableID string, status entities.TableStatus) error {
	args := m.Called(ctx, tableID, status)
	return args.Error(0)
}

func (m *MockTableRepository) CountActiveSeats(ctx context.Context, tableID string) (int, error) {
	args := m.Called(ctx, tableID)
	return args.Int(0), args.Error(1)
}

func (m *MockTableRepository) GetActiveSeat(ctx context.Context, tableID string, userID int64) (*entities.SeatedPlayer, error) {
	args := m.Called(ctx, tableID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SeatedPlayer), args.Error(1)
}

func (m *MockTableRepository) InsertSeat(ctx context.Context, seat *entities.SeatedPlayer) error {
	args := m.Called(ctx, seat)
	return args.Error(0)
}

func (m *MockTableRepository) DeactivateSeat(ctx context.Context, seatID int64, leftAt time.Time) error {
	args := m.Called(ctx, seatID, leftAt)
	return args.Error(0)
}

// MockHandRepository is a mock implementation of HandRepository
type MockHandRepository struct {
	mock.Mock
}

func (m *MockHandRepository) Create(ctx context.Context, hand *entities.Hand) error {
	args := m.Called(ctx, hand)
	return args.Error(0)
}

func (m *MockHandRepository) GetByID(ctx context.Context, handID string) (*entities.Hand, error) {
	args := m.Called(ctx, handID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hand), args.Error(1)
}

func (m *MockHandRepository) GetByIDForUpdate(ctx context.Context, handID string) (*entities.Hand, error) {
	args := m.Called(ctx, handID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hand), args.Error(1)
}

func (m *MockHandRepository) Update(ctx context.Context, hand *entities.Hand) error {
	args := m.Called(ctx, hand)
	return args.Error(0)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entities.SportsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, eventID string) (*entities.SportsEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SportsEvent), args.Error(1)
}

func (m *MockEventRepository) ListUpcoming(ctx context.Context, sport string, now time.Time) ([]*entities.SportsEvent, error) {
	args := m.Called(ctx, sport, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SportsEvent), args.Error(1)
}

func (m *MockEventRepository) ListBySport(ctx context.Context, sport string) ([]*entities.SportsEvent, error) {
	args := m.Called(ctx, sport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SportsEvent), args.Error(1)
}

func (m *MockEventRepository) ListAll(ctx context.Context) ([]*entities.SportsEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SportsEvent), args.Error(1)
}

func (m *MockEventRepository) UpdateScore(ctx context.Context, eventID string, homeScore, awayScore int, status entities.EventStatus) error {
	args := m.Called(ctx, eventID, homeScore, awayScore, status)
	return args.Error(0)
}

// MockParlayRepository is a mock implementation of ParlayRepository
type MockParlayRepository struct {
	mock.Mock
}

func (m *MockParlayRepository) CreateWithLegs(ctx context.Context, parlay *entities.Parlay) error {
	args := m.Called(ctx, parlay)
	return args.Error(0)
}

func (m *MockParlayRepository) GetByID(ctx context.Context, parlayID string) (*entities.Parlay, error) {
	args := m.Called(ctx, parlayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Parlay), args.Error(1)
}

func (m *MockParlayRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Parlay), args.Error(1)
}

func (m *MockParlayRepository) GetUnresolvedByEvent(ctx context.Context, eventID string) ([]*entities.Parlay, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Parlay), args.Error(1)
}

func (m *MockParlayRepository) UpdateLegResult(ctx context.Context, legID string, result entities.LegResult) error {
	args := m.Called(ctx, legID, result)
	return args.Error(0)
}

func (m *MockParlayRepository) UpdateStatus(ctx context.Context, parlayID string, status entities.ParlayStatus, resolvedAt *time.Time) error {
	args := m.Called(ctx, parlayID, status, resolvedAt)
	return args.Error(0)
}

// MockComplianceRepository is a mock implementation of ComplianceRepository
type MockComplianceRepository struct {
	mock.Mock
}

func (m *MockComplianceRepository) GetProfile(ctx context.Context, userID int64) (*entities.ComplianceProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceProfile), args.Error(1)
}

func (m *MockComplianceRepository) SaveProfile(ctx context.Context, profile *entities.ComplianceProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockComplianceRepository) RecordCheck(ctx context.Context, entry *entities.ComplianceLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockEventOddsCache is a mock implementation of EventOddsCache
type MockEventOddsCache struct {
	mock.Mock
}

func (m *MockEventOddsCache) GetSport(ctx context.Context, sport string) ([]*entities.SportsEvent, bool, error) {
	args := m.Called(ctx, sport)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*entities.SportsEvent), args.Bool(1), args.Error(2)
}

func (m *MockEventOddsCache) SetSport(ctx context.Context, sport string, events []*entities.SportsEvent, ttl time.Duration) error {
	args := m.Called(ctx, sport, events, ttl)
	return args.Error(0)
}

func (m *MockEventOddsCache) Invalidate(ctx context.Context, sport string) error {
	args := m.Called(ctx, sport)
	return args.Error(0)
}
