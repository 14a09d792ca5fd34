package repository

import (
	"context"
	"fmt"

	"sweephouse/application"
	"sweephouse/database"
	"sweephouse/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher
	userRepo               interfaces.UserRepository
	transactionRepo        interfaces.TransactionRepository
	tableRepo              interfaces.TableRepository
	handRepo               interfaces.HandRepository
	eventRepo              interfaces.EventRepository
	parlayRepo             interfaces.ParlayRepository
	complianceRepo         interfaces.ComplianceRepository
}

type unitOfWorkFactory struct {
	db           *database.DB
	newPublisher func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. newPublisher is
// invoked per unit of work so each transaction gets its own pending event
// buffer.
func NewUnitOfWorkFactory(db *database.DB, newPublisher func() interfaces.TransactionalEventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:           db,
		newPublisher: newPublisher,
	}
}

// Create creates a new UnitOfWork instance
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: f.newPublisher(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.userRepo = newUserRepository(tx)
	u.transactionRepo = newTransactionRepository(tx)
	u.tableRepo = newTableRepository(tx)
	u.handRepo = newHandRepository(tx)
	u.eventRepo = newEventRepository(tx)
	u.parlayRepo = newParlayRepository(tx)
	u.complianceRepo = newComplianceRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// TransactionRepository returns the transaction repository for this unit of work
func (u *unitOfWork) TransactionRepository() interfaces.TransactionRepository {
	if u.transactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionRepo
}

// TableRepository returns the table repository for this unit of work
func (u *unitOfWork) TableRepository() interfaces.TableRepository {
	if u.tableRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tableRepo
}

// HandRepository returns the hand repository for this unit of work
func (u *unitOfWork) HandRepository() interfaces.HandRepository {
	if u.handRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.handRepo
}

// EventRepository returns the sports event repository for this unit of work
func (u *unitOfWork) EventRepository() interfaces.EventRepository {
	if u.eventRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.eventRepo
}

// ParlayRepository returns the parlay repository for this unit of work
func (u *unitOfWork) ParlayRepository() interfaces.ParlayRepository {
	if u.parlayRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.parlayRepo
}

// ComplianceRepository returns the compliance repository for this unit of work
func (u *unitOfWork) ComplianceRepository() interfaces.ComplianceRepository {
	if u.complianceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.complianceRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
