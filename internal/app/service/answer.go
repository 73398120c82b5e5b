package service

const (
	feedbackCorrect = "Congratulations, you're right!"
	feedbackWrong   = "Wrong answer! Please, try again."
)

// AnswerMatches reports whether submitted is exactly the expected sequence:
// same length, same indices, same order. A nil submission counts as empty.
func AnswerMatches(expected, submitted []int) bool {
	if len(expected) != len(submitted) {
		return false
	}
	for i := range expected {
		if expected[i] != submitted[i] {
			return false
		}
	}
	return true
}
