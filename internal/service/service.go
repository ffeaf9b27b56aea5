package service

import (
	"context"
	"errors"
	"time"

	"github.com/embunadw/E-Procurement/internal/apierror"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Clock returns the current business time (WIB in production).
type Clock func() time.Time

// LocalClock returns a Clock reading time.Now in loc.
func LocalClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// Notifier queues outbound e-mail. worker.Dispatcher satisfies it.
type Notifier interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

// runTx runs fn inside a transaction. Unit tests pass a nil db and fn
// receives a nil tx, which repositories treat as "use the default handle".
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFound turns gorm.ErrRecordNotFound into a 404 with msg and passes any
// other error through.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(msg)
	}
	return err
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
