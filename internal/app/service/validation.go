package service

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"quiz_engine/internal/common"
	"quiz_engine/internal/domain/model"
)

const minPasswordLength = 5

// usernamePattern requires something before an "@" and a dotted domain after it.
var usernamePattern = regexp.MustCompile(`^.+@.+\..+$`)

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username must be an email address: %w", common.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("password must have at least %d characters: %w", minPasswordLength, common.ErrValidation)
	}
	return nil
}

func validateQuiz(req CreateQuizRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required: %w", common.ErrValidation)
	}
	if req.Text == "" {
		return fmt.Errorf("text is required: %w", common.ErrValidation)
	}
	if len(req.Options) < model.MinQuizOptions {
		return fmt.Errorf("at least %d options are required: %w", model.MinQuizOptions, common.ErrValidation)
	}
	return nil
}

func validatePage(page int) error {
	if page < 0 {
		return fmt.Errorf("page must not be negative: %w", common.ErrValidation)
	}
	return nil
}
