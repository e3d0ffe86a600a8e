package services

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/crudkeeper/internal/common"
)

// encodeWithoutID marshals rec and removes the id field, which the store
// rejects in update bodies.
func encodeWithoutID[T any](rec T) ([]byte, error) {
	fields, err := toFields(rec)
	if err != nil {
		return nil, err
	}
	delete(fields, common.IDField)
	return json.Marshal(fields)
}

// withID returns a copy of rec carrying id.
func withID[T any](rec T, id string) (T, error) {
	var out T

	fields, err := toFields(rec)
	if err != nil {
		return out, err
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return out, err
	}
	fields[common.IDField] = raw

	b, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func toFields[T any](rec T) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}
	return fields, nil
}
