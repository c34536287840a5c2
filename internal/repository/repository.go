// Package repository provides the postgres-backed implementations of the
// domain repository interfaces.
package repository

import (
	"errors"

	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"gorm.io/gorm"
)

// notFound converts gorm's record-not-found into the domain sentinel, with
// the entity name in the hint. Other errors become database errors.
func notFound(err error, msg, hint string, details map[string]interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ierr.NewError(msg).
			WithHint(hint).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}
	return dbError(err, details)
}

func dbError(err error, details map[string]interface{}) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ierr.WithError(err).
			WithHint("Data dengan kunci yang sama sudah ada").
			WithReportableDetails(details).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithHint("Operasi database gagal").
		WithReportableDetails(details).
		Mark(ierr.ErrDatabase)
}
