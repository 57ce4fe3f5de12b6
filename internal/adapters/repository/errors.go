package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/nyaysathi/core/internal/domain/entities"
)

// Postgres error codes
const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqCheckViolation
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// translateWriteError maps constraint failures onto domain errors
func translateWriteError(op string, err error) error {
	switch {
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w: %v", op, entities.ErrValidation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func nullableString(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// setClause accumulates "column = ?" assignments for partial updates
type setClause struct {
	columns []string
	args    []interface{}
}

func (s *setClause) add(column string, value interface{}) {
	s.columns = append(s.columns, column+" = ?")
	s.args = append(s.args, value)
}

func (s *setClause) String() string {
	return strings.Join(s.columns, ", ")
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func attendeesValue(ids entities.ContactIDs) (string, error) {
	v, err := ids.Value()
	if err != nil {
		return "", fmt.Errorf("encode attendees: %w", err)
	}
	return v.(string), nil
}
