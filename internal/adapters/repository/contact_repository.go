package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

const contactColumns = `id, name, email, phone, address, dob, created_at, updated_at`

// ContactRepositoryImpl implements ports.ContactRepository
type ContactRepositoryImpl struct {
	db *sqlx.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sqlx.DB) ports.ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

// Create inserts a new contact. Email and phone must be unused.
func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *entities.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO contacts (` + contactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone,
		nullableString(contact.Address), nullableString(contact.DOB),
		contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrContactExists
		}
		return translateWriteError("create contact", err)
	}
	return nil
}

// GetByID retrieves a contact by ID
func (r *ContactRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Contact, error) {
	var contact entities.Contact
	query := r.db.Rebind(`SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`)

	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact by id: %w", err)
	}
	return &contact, nil
}

// GetByIDs loads every contact whose id is listed. Unknown ids are skipped.
func (r *ContactRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*entities.Contact, error) {
	if len(ids) == 0 {
		return []*entities.Contact{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+contactColumns+` FROM contacts WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build contacts lookup: %w", err)
	}

	contacts := []*entities.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get contacts by ids: %w", err)
	}
	return contacts, nil
}

// ExistsByEmailOrPhone reports whether any contact already uses the email or the phone
func (r *ContactRepositoryImpl) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM contacts WHERE email = ? OR phone = ?)`)

	if err := r.db.QueryRowContext(ctx, query, email, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("check contact exists: %w", err)
	}
	return exists, nil
}

// List returns contacts in creation order
func (r *ContactRepositoryImpl) List(ctx context.Context, filter ports.ContactFilter) ([]*entities.Contact, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + strings.ToLower(*filter.Search) + "%"
		conditions = append(conditions, "(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM contacts %s ORDER BY created_at, id`, contactColumns, whereClause)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	contacts := []*entities.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Delete removes a contact. References held by tasks and events are left dangling.
func (r *ContactRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrContactNotFound
	}
	return nil
}
