package service

import (
	"errors"
	"fmt"

	"cupcake-store/internal/apperr"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func storageErr(op string, err error) error {
	return apperr.Storage(fmt.Errorf("%s: %w", op, err))
}
