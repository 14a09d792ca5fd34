package repository

import (
	"sweephouse/application"
	"sweephouse/database"
	"sweephouse/domain/interfaces"
)

// CreateTestUnitOfWork creates a unit of work for testing with the provided
// transactional publisher
func CreateTestUnitOfWork(db *database.DB, transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	factory := NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return transactionalPublisher
	})
	return factory.Create()
}
