package model

import "time"

// MinQuizOptions is the smallest number of options a quiz may offer.
const MinQuizOptions = 2

// Quiz is a single multiple-choice question owned by its creator.
// Answer and CreatedBy never leave the service in JSON form.
type Quiz struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"-"`
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	Answer    []int     `json:"-"`
	CreatedBy string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// IsOwnedBy reports whether username created the quiz.
func (q *Quiz) IsOwnedBy(username string) bool {
	return q.CreatedBy == username
}
