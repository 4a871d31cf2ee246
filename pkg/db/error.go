package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// duplicateKeySignatures maps each supported dialect to the substring its
// driver puts in a unique constraint violation. TranslateError normalizes
// most of these to gorm.ErrDuplicatedKey; the raw signatures stay for the
// code paths gorm does not translate.
var duplicateKeySignatures = map[string]string{
	"postgres": "duplicate key value violates unique constraint", // SQLSTATE 23505
	"mysql":    "Error 1062",
	"sqlite":   "UNIQUE constraint failed", // SQLITE_CONSTRAINT_UNIQUE
}

// IsDuplicateKeyErr reports whether err is a unique constraint violation on
// any dialect Dialect can open.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, signature := range duplicateKeySignatures {
		if strings.Contains(msg, signature) {
			return true
		}
	}
	return false
}
