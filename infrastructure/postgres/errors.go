package postgres

import (
	"errors"

	"gorm.io/gorm"

	"uptask-api/domain/repositories"
)

// translate แปลง gorm.ErrRecordNotFound เป็น repositories.ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
