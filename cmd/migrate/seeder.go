package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Seeder populates one domain's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed executes the seeding logic within the provided transaction, which
	// gives all-or-nothing semantics across seeders.
	Seed(ctx context.Context, tx *sql.Tx) error
}

// Registry holds the available seeders by name.
type Registry map[string]Seeder

func (r Registry) Register(s Seeder) {
	r[s.Name()] = s
}

func (r Registry) Get(name string) (Seeder, bool) {
	s, ok := r[name]
	return s, ok
}

// List returns the seeders sorted by name.
func (r Registry) List() []Seeder {
	result := make([]Seeder, 0, len(r))
	for _, s := range r {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Run executes the named seeders, or all of them when names is empty, in a
// single transaction. Any failure rolls the whole run back.
func (r Registry) Run(ctx context.Context, db *sql.DB, names ...string) error {
	selected := r.List()
	if len(names) > 0 {
		selected = selected[:0]
		for _, name := range names {
			s, ok := r.Get(name)
			if !ok {
				return fmt.Errorf("seeder not found: %s", name)
			}
			selected = append(selected, s)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, s := range selected {
		if err := s.Seed(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
