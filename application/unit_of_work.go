package application

import (
	"context"

	"sweephouse/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() interfaces.UserRepository
	TransactionRepository() interfaces.TransactionRepository
	TableRepository() interfaces.TableRepository
	HandRepository() interfaces.HandRepository
	EventRepository() interfaces.EventRepository
	ParlayRepository() interfaces.ParlayRepository
	ComplianceRepository() interfaces.ComplianceRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
