// Package domain contains the core entities of the review engine:
// reviewable item identity, grading outcomes and the per-learner
// scheduling ledger.
package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ItemKind identifies which catalog family a reviewable item belongs to.
type ItemKind string

// Possible item kind values
const (
	ItemKindWord       ItemKind = "word"
	ItemKindExpression ItemKind = "expression"
	ItemKindExample    ItemKind = "example"
)

// ErrInvalidItemKind indicates an item kind outside the known set.
var ErrInvalidItemKind = errors.New("invalid item kind")

// Valid reports whether the kind is one of the known catalog families.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindWord, ItemKindExpression, ItemKindExample:
		return true
	}
	return false
}

// IsDerived reports whether the kind resolves to a parent word for
// scheduling. Expressions and examples carry their own identity in the
// queue but share the word's ledger row.
func (k ItemKind) IsDerived() bool {
	return k == ItemKindExpression || k == ItemKindExample
}

// ItemRef identifies one reviewable item as presented to the learner.
type ItemRef struct {
	Kind ItemKind  `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

// Validate checks if the ItemRef has valid data.
func (r ItemRef) Validate() error {
	if !r.Kind.Valid() {
		return ErrInvalidItemKind
	}
	if r.ID == uuid.Nil {
		return ErrEmptyItemID
	}
	return nil
}
