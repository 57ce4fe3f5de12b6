package services

import (
	"testing"

	"github.com/nyaysathi/core/internal/adapters/repository"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/testfixtures"
)

type testServices struct {
	contacts *ContactService
	tasks    *TaskService
	events   *EventService
	pdfs     *PdfService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	return newTestServicesWithLogger(t, logger.NewNop())
}

func newTestServicesWithLogger(t *testing.T, log *logger.Logger) testServices {
	t.Helper()
	db := testfixtures.NewSQLiteDB(t)

	contactRepo := repository.NewContactRepository(db.DB)
	resolver := NewReferenceResolver(contactRepo, log)

	return testServices{
		contacts: NewContactService(contactRepo, log),
		tasks:    NewTaskService(repository.NewTaskRepository(db.DB), resolver, log),
		events:   NewEventService(repository.NewEventRepository(db.DB), resolver, log),
		pdfs:     NewPdfService(repository.NewPdfRepository(db.DB), log),
	}
}

func strPtr(s string) *string { return &s }
