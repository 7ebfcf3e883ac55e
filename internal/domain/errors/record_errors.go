package errors

import (
	"errors"
	"fmt"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

var (
	// ErrNoBusinessArea means the caller resolved to an empty area set.
	ErrNoBusinessArea = errors.New("user has no business area assigned")

	// ErrInvalidFileKey means a storage key does not name a known kind.
	ErrInvalidFileKey = errors.New("invalid file key")

	// ErrForeignFileKey means a file_url lies outside the namespace of the
	// record it is set on.
	ErrForeignFileKey = errors.New("file key belongs to another record namespace")

	// ErrNoAttachment means the record has no current file.
	ErrNoAttachment = errors.New("record has no file attached")
)

// RecordNotFoundError covers missing, soft-deleted and out-of-scope records
// alike so that existence in other areas is never revealed.
type RecordNotFoundError struct {
	Kind entity.Kind
	ID   uint
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind.Label(), e.ID)
}

func NewRecordNotFoundError(kind entity.Kind, id uint) error {
	return &RecordNotFoundError{Kind: kind, ID: id}
}

// ForeignAreaError is returned when a create names an area outside the
// caller's set.
type ForeignAreaError struct {
	BusinessArea string
}

func (e *ForeignAreaError) Error() string {
	return fmt.Sprintf("business area %q is not assigned to this user", e.BusinessArea)
}

func IsRecordNotFound(err error) bool {
	var target *RecordNotFoundError
	return errors.As(err, &target)
}

func IsForeignArea(err error) bool {
	var target *ForeignAreaError
	return errors.As(err, &target)
}
