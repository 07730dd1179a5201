package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrPatternNotFound indicates the exam pattern could not be loaded.
	ErrPatternNotFound = errors.New("exam pattern not found")
	// ErrPaperNotFound is returned for unknown generated paper IDs.
	ErrPaperNotFound = errors.New("paper not found")
	// ErrQuestionNotFound indicates a question ID is not part of the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoQuestionsForSubject matches *NoQuestionsForSubjectError.
	ErrNoQuestionsForSubject = errors.New("no questions available for subject")
	// ErrInsufficientQuestions matches *InsufficientQuestionsError.
	ErrInsufficientQuestions = errors.New("not enough questions available")
	// ErrInvalidDistribution matches *DistributionError.
	ErrInvalidDistribution = errors.New("invalid difficulty distribution")
)

// NoQuestionsForSubjectError is returned before any section is processed
// when the bank holds nothing for the requested subject.
type NoQuestionsForSubjectError struct {
	Subject string
}

func (e *NoQuestionsForSubjectError) Error() string {
	return fmt.Sprintf("no questions available for subject: %s", e.Subject)
}

func (e *NoQuestionsForSubjectError) Is(target error) bool {
	return target == ErrNoQuestionsForSubject
}

// InsufficientQuestionsError names the section and tier that ran short.
type InsufficientQuestionsError struct {
	Section    string
	Difficulty Difficulty
	Required   int
	Available  int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("not enough questions available for section: %s (%s: need %d, have %d)",
		e.Section, e.Difficulty, e.Required, e.Available)
}

func (e *InsufficientQuestionsError) Is(target error) bool {
	return target == ErrInsufficientQuestions
}

// DistributionError reports a section whose percentages cannot be allocated.
type DistributionError struct {
	Section      string
	Distribution DifficultyDistribution
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("invalid difficulty distribution for section %s: %d%% easy, %d%% medium, %d%% hard",
		e.Section, e.Distribution.Easy, e.Distribution.Medium, e.Distribution.Hard)
}

func (e *DistributionError) Is(target error) bool {
	return target == ErrInvalidDistribution
}
