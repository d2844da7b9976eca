package services

import (
	"errors"

	"recipe-share/models"

	"gorm.io/gorm"
)

// notFoundOr turns a missing row into a NotFound for what and anything else
// into an internal error. Domain errors pass through untouched.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NotFound(what)
	}
	if isDomainError(err) {
		return err
	}
	return models.Internal("database error", err)
}

func isDomainError(err error) bool {
	var (
		unauthorized models.ErrorUnauthorized
		denied       models.ErrorPermissionDenied
		notFound     models.ErrorNotFound
		invalid      models.ErrorInvalidOperation
		conflict     models.ErrorConflict
		internal     models.ErrorInternalServer
	)
	return errors.As(err, &unauthorized) || errors.As(err, &denied) ||
		errors.As(err, &notFound) || errors.As(err, &invalid) ||
		errors.As(err, &conflict) || errors.As(err, &internal)
}

func internalOr(err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return models.Internal("database error", err)
}
