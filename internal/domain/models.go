package domain

import "time"

// Difficulty is the tier a question belongs to.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the tiers in the order sections are filled.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// QuestionType is the answer format of a question.
type QuestionType string

const (
	MultipleChoice QuestionType = "Multiple Choice"
	ShortAnswer    QuestionType = "Short Answer"
	LongAnswer     QuestionType = "Long Answer"
	TrueFalse      QuestionType = "True/False"
)

// QuestionTypes lists every known question type.
var QuestionTypes = []QuestionType{MultipleChoice, ShortAnswer, LongAnswer, TrueFalse}

// Question is a single bank entry. Questions are treated as immutable once stored.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Text          string       `json:"text" yaml:"text" validate:"min=10"`
	Subject       string       `json:"subject" yaml:"subject"`
	Topic         string       `json:"topic" yaml:"topic" validate:"min=2"`
	Difficulty    Difficulty   `json:"difficulty" yaml:"difficulty" validate:"difficulty"`
	Type          QuestionType `json:"type" yaml:"type" validate:"question_type"`
	Marks         int          `json:"marks" yaml:"marks" validate:"min=1,max=20"`
	Options       []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty" yaml:"correctAnswer,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" yaml:"createdAt"`
	CreatedBy     string       `json:"createdBy" yaml:"createdBy"`
}

// QuestionBank is a named, subject-scoped collection of questions.
type QuestionBank struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name" validate:"min=3"`
	Subject     string     `json:"subject" yaml:"subject" validate:"min=2"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CreatedBy   string     `json:"createdBy" yaml:"createdBy"`
}

// DifficultyDistribution holds the percentage of a section drawn from each tier.
type DifficultyDistribution struct {
	Easy   int `json:"easy" yaml:"easy" validate:"min=0,max=100"`
	Medium int `json:"medium" yaml:"medium" validate:"min=0,max=100"`
	Hard   int `json:"hard" yaml:"hard" validate:"min=0,max=100"`
}

// Total is the sum of the three percentages.
func (d DifficultyDistribution) Total() int {
	return d.Easy + d.Medium + d.Hard
}

// ExamSection is one graded block of a pattern.
type ExamSection struct {
	Name                   string                 `json:"name" yaml:"name" validate:"min=2"`
	QuestionTypes          []QuestionType         `json:"questionTypes" yaml:"questionTypes" validate:"min=1,dive,question_type"`
	QuestionCount          int                    `json:"questionCount" yaml:"questionCount" validate:"min=1"`
	DifficultyDistribution DifficultyDistribution `json:"difficultyDistribution" yaml:"difficultyDistribution"`
	MarksPerQuestion       int                    `json:"marksPerQuestion" yaml:"marksPerQuestion" validate:"min=1"`
}

// Marks is the number of marks the section contributes to a paper.
func (s ExamSection) Marks() int {
	return s.QuestionCount * s.MarksPerQuestion
}

// AllowsType reports whether questions of type t can fill this section.
func (s ExamSection) AllowsType(t QuestionType) bool {
	for _, allowed := range s.QuestionTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// ExamPattern is a declarative template for a paper.
type ExamPattern struct {
	ID         string        `json:"id" yaml:"id"`
	Name       string        `json:"name" yaml:"name" validate:"min=3"`
	TotalMarks int           `json:"totalMarks" yaml:"totalMarks" validate:"min=10"`
	Duration   int           `json:"duration" yaml:"duration" validate:"min=15"` // minutes
	Sections   []ExamSection `json:"sections" yaml:"sections" validate:"min=1,dive"`
}

// SectionMarks sums the marks of every section. It may differ from TotalMarks.
func (p ExamPattern) SectionMarks() int {
	total := 0
	for _, s := range p.Sections {
		total += s.Marks()
	}
	return total
}

// PaperSection locates one section inside a paper's flattened question list.
type PaperSection struct {
	Name             string `json:"name"`
	Offset           int    `json:"offset"`
	Count            int    `json:"count"`
	MarksPerQuestion int    `json:"marksPerQuestion"`
}

// GeneratedPaper is the realized output of running a pattern against a bank.
type GeneratedPaper struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	TotalMarks int            `json:"totalMarks"`
	Duration   int            `json:"duration"`
	Subject    string         `json:"subject"`
	Pattern    ExamPattern    `json:"pattern"`
	Questions  []Question     `json:"questions"`
	Sections   []PaperSection `json:"sections"`
	CreatedAt  time.Time      `json:"createdAt"`
	CreatedBy  string         `json:"createdBy"`
}

// SectionQuestions returns the questions drawn for the section at index i,
// or nil when the index or the stored layout is out of range.
func (p GeneratedPaper) SectionQuestions(i int) []Question {
	if i < 0 || i >= len(p.Sections) {
		return nil
	}
	s := p.Sections[i]
	if s.Offset < 0 || s.Count < 0 || s.Offset+s.Count > len(p.Questions) {
		return nil
	}
	return p.Questions[s.Offset : s.Offset+s.Count]
}

// PaperEvent is published whenever the paper library changes.
type PaperEvent struct {
	Type    string         `json:"type"` // generated, duplicated, deleted
	PaperID string         `json:"paperId"`
	Paper   GeneratedPaper `json:"paper"`
	At      time.Time      `json:"at"`
}

const (
	PaperGenerated  = "generated"
	PaperDuplicated = "duplicated"
	PaperDeleted    = "deleted"
)
