package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidArgument wraps every rejected write.
var ErrInvalidArgument = errors.New("invalid argument")

// valueTypes are the accepted keys of a typed value object.
var valueTypes = map[string]struct{}{
	"nullValue":      {},
	"booleanValue":   {},
	"integerValue":   {},
	"doubleValue":    {},
	"timestampValue": {},
	"stringValue":    {},
	"bytesValue":     {},
	"referenceValue": {},
	"geoPointValue":  {},
	"arrayValue":     {},
	"mapValue":       {},
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Get(ctx context.Context, name string) (*Document, error) {
	return s.repo.Get(ctx, name)
}

// Patch validates fields and replaces the document's content with them.
func (s *Service) Patch(ctx context.Context, name string, fields map[string]json.RawMessage) (*Document, error) {
	for field, raw := range fields {
		if err := validateValue(raw); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidArgument, field, err)
		}
	}
	return s.repo.Put(ctx, name, fields, s.now())
}

func validateValue(raw json.RawMessage) error {
	var v map[string]json.RawMessage
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return errors.New("value must be an object")
	}
	if len(v) != 1 {
		return errors.New("value must have exactly one type")
	}
	for typ, inner := range v {
		if _, ok := valueTypes[typ]; !ok {
			return fmt.Errorf("unknown value type %q", typ)
		}
		switch typ {
		case "integerValue":
			return validateInteger(inner)
		case "timestampValue":
			var ts string
			if err := json.Unmarshal(inner, &ts); err != nil {
				return errors.New("timestampValue must be a string")
			}
			if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
				return fmt.Errorf("invalid timestampValue: %v", err)
			}
		}
	}
	return nil
}

// validateInteger accepts a decimal string or a bare integral JSON number.
func validateInteger(raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return fmt.Errorf("invalid integerValue %q", s)
		}
		return nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.New("integerValue must be an integer")
	}
	return nil
}
