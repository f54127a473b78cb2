package records

import (
	"github.com/google/uuid"

	"github.com/mateohidalgo/landrecords-backend/pkg/db/models"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
)

// Operation enumerates the record actions subject to ownership checks.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

func (o Operation) valid() bool {
	switch o {
	case OpRead, OpUpdate, OpDelete:
		return true
	}
	return false
}

// Authorize allows an operation only for the record's owner. Non-owners get the
// same forbidden answer on every operation, including reads.
func Authorize(record *models.LandRecord, userID uuid.UUID, op Operation) error {
	if !op.valid() {
		return pkgerrors.New(pkgerrors.CodeInternal, "unknown record operation")
	}
	if record == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if record.OwnerID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "you do not have permission to access this record")
	}
	return nil
}
