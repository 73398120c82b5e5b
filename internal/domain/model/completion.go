package model

import "time"

// Completion records that a user correctly solved a quiz. Completions are
// append-only: one row per successful solve, never updated or removed.
type Completion struct {
	ID          int64     `json:"-"`
	QuizID      int64     `json:"id"`
	CompletedBy string    `json:"-"`
	CompletedAt time.Time `json:"completedAt"`
}
