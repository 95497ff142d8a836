package models

import "time"

// Student carries the student attributes the grading engine needs.
// Discontinued is maintained by the registry; the engine only reads it.
type Student struct {
	ID             string     `db:"id" json:"id"`
	FullName       string     `db:"full_name" json:"full_name"`
	Discontinued   bool       `db:"is_discontinued" json:"is_discontinued"`
	DiscontinuedAt *time.Time `db:"discontinued_at" json:"discontinued_at,omitempty"`
}
