// Package models defines the records exchanged with the collection store.
//
// Field names on the wire equal the JSON tags below; the store adds "_id".
package models

import (
	"math"
	"strings"

	"github.com/dmitrijs2005/crudkeeper/internal/common"
)

// Record is what a collection service can store.
type Record interface {
	GetID() string
	// Validate reports missing or invalid fields as a common.KindValidation error.
	Validate() error
}

// Collection names on the remote store.
const (
	CollectionUnicorns = "unicorns"
	CollectionProducts = "products"
)

// fieldErrors collects per-field messages for one validation pass.
type fieldErrors map[string]string

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) err(op string) error {
	if len(f) == 0 {
		return nil
	}
	return common.NewValidation(op, f)
}

// number reports whether v is finite and flags field otherwise. NaN compares
// false against every bound and neither NaN nor Inf can be encoded as JSON.
func (f fieldErrors) number(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		f[field] = "must be a finite number"
		return false
	}
	return true
}
