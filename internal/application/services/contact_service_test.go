package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

func TestContactService_CreateConflict(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	first, err := svc.contacts.CreateContact(ctx, ports.CreateContactRequest{Name: "Asha", Email: "asha@example.com", Phone: "9000000001"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	tests := []struct {
		name string
		req  ports.CreateContactRequest
	}{
		{"same email", ports.CreateContactRequest{Name: "B", Email: "asha@example.com", Phone: "9000000002"}},
		{"same phone", ports.CreateContactRequest{Name: "C", Email: "c@example.com", Phone: "9000000001"}},
		{"padded email", ports.CreateContactRequest{Name: "D", Email: "  asha@example.com ", Phone: "9000000003"}},
		{"padded phone", ports.CreateContactRequest{Name: "E", Email: "e@example.com", Phone: " 9000000001\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.contacts.CreateContact(ctx, tt.req)
			if !errors.Is(err, entities.ErrContactExists) {
				t.Fatalf("err = %v, want ErrContactExists", err)
			}
		})
	}

	all, err := svc.contacts.ListContacts(ctx, ports.ContactFilter{})
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != first.ID {
		t.Fatalf("conflicting creates must not insert records, got %d contacts", len(all))
	}
}

// existsRecorder captures the arguments of the duplicate check
type existsRecorder struct {
	ports.ContactRepository
	email, phone string
}

func (r *existsRecorder) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	r.email, r.phone = email, phone
	return true, nil
}

func TestContactService_DuplicateCheckUsesTrimmedValues(t *testing.T) {
	repo := &existsRecorder{}
	svc := NewContactService(repo, logger.NewNop())

	_, err := svc.CreateContact(context.Background(), ports.CreateContactRequest{Name: "Asha", Email: " asha@example.com  ", Phone: "\t9000000001 "})
	if !errors.Is(err, entities.ErrContactExists) {
		t.Fatalf("err = %v, want ErrContactExists", err)
	}
	if repo.email != "asha@example.com" || repo.phone != "9000000001" {
		t.Fatalf("duplicate check got email %q phone %q", repo.email, repo.phone)
	}
}

func TestContactService_CreateRequiresName(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.contacts.CreateContact(context.Background(), ports.CreateContactRequest{Name: "  ", Email: "x@example.com", Phone: "1"})
	if !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestContactService_GetAndDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	c, err := svc.contacts.CreateContact(ctx, ports.CreateContactRequest{Name: "Asha", Email: "asha@example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	got, err := svc.contacts.GetContact(ctx, c.ID)
	if err != nil || got.Name != "Asha" {
		t.Fatalf("GetContact = %+v, %v", got, err)
	}
	if err := svc.contacts.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if _, err := svc.contacts.GetContact(ctx, c.ID); !entities.IsNotFound(err) {
		t.Fatalf("GetContact after delete err = %v", err)
	}
}
