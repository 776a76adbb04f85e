// Package store holds the per-screen optimistic collections. Each store is
// the sole mutator of its own collection: mutations go through the API first
// and local state changes only after the server acknowledges, with the
// server-returned entity as the authoritative copy.
package store

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ValidationError is a local, field-scoped rejection. It blocks submission
// and never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ListOptions is plain pagination. Zero values mean "let the server decide".
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) query(q map[string][]string) {
	if o.Page > 0 {
		q["page"] = []string{strconv.Itoa(o.Page)}
	}

	if o.Limit > 0 {
		q["limit"] = []string{strconv.Itoa(o.Limit)}
	}
}

type categoryFilterKind int

const (
	filterAll categoryFilterKind = iota
	filterOne
	filterUncategorized
)

// CategoryFilter is deliberately tri-state: "no filter", "one category" and
// "explicitly uncategorized" are distinct, well-defined selections.
type CategoryFilter struct {
	kind categoryFilterKind
	id   uuid.UUID
}

func AllCategories() CategoryFilter {
	return CategoryFilter{kind: filterAll}
}

func OneCategory(id uuid.UUID) CategoryFilter {
	return CategoryFilter{kind: filterOne, id: id}
}

func Uncategorized() CategoryFilter {
	return CategoryFilter{kind: filterUncategorized}
}

func (f CategoryFilter) query(q map[string][]string) {
	switch f.kind {
	case filterOne:
		q["categoryId"] = []string{f.id.String()}
	case filterUncategorized:
		q["categoryId"] = []string{"none"}
	}
}

// String is the filter's display label.
func (f CategoryFilter) String() string {
	switch f.kind {
	case filterOne:
		return f.id.String()
	case filterUncategorized:
		return "uncategorized"
	}

	return "all"
}
