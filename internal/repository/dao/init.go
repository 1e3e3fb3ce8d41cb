package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Business{},
		&Voucher{},
		&Redemption{},
		&News{},
		&Event{},
		&EventRegistration{},
		&Location{},
		&CheckIn{},
		&Collection{},
		&Feedback{},
		&Subscriber{},
	)
}

// isUniqueViolation reports whether err is a postgres unique_violation on a
// constraint whose name contains the given fragment.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}

	return strings.Contains(pgErr.ConstraintName, constraint) || strings.Contains(pgErr.Message, constraint)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}

	return err
}
