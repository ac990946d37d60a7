package httpapi

import (
	"time"

	"github.com/goliatone/go-catalog/failure"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func parseUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, failure.Validation(map[string]string{field: "must be a valid UUID"})
	}
	return &id, nil
}

func parseTime(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, failure.Validation(map[string]string{field: "must be an RFC 3339 timestamp"})
	}
	return &t, nil
}

func parseDecimal(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, failure.Validation(map[string]string{field: "must be a number"})
	}
	return &d, nil
}
