package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
)

// clock lets tests pin the wall time on time-sensitive services. Production
// wiring leaves it at utcNow.
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// jsonList marshals a string slice into a JSON column, normalizing nil to
// an empty list so stored records never hold SQL NULL for list fields.
func jsonList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

func jsonObject(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFoundOr converts gorm's record-not-found into the API taxonomy and
// wraps anything else as a persistence failure.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.NotFound(format, args...)
	}
	return apierr.Persistence(err)
}
