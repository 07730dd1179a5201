package cli

import (
	"time"

	"exam-paper-service/internal/domain"
)

// sampleBanks seeds the in-memory catalog when no database is configured.
func sampleBanks() []domain.QuestionBank {
	now := time.Now()
	return []domain.QuestionBank{
		{
			ID:          "qb1",
			Name:        "Data Structures Basics",
			Subject:     "Computer Science",
			Description: "Basic questions on arrays, linked lists, stacks, and queues",
			Questions: []domain.Question{
				{
					ID:            "q1",
					Text:          "What is the time complexity of searching an element in a linked list?",
					Subject:       "Computer Science",
					Topic:         "Data Structures",
					Difficulty:    domain.Easy,
					Type:          domain.MultipleChoice,
					Marks:         1,
					Options:       []string{"O(1)", "O(log n)", "O(n)", "O(n²)"},
					CorrectAnswer: "O(n)",
					CreatedAt:     now,
					CreatedBy:     "admin",
				},
				{
					ID:         "q2",
					Text:       "Describe the difference between a stack and a queue.",
					Subject:    "Computer Science",
					Topic:      "Data Structures",
					Difficulty: domain.Medium,
					Type:       domain.ShortAnswer,
					Marks:      3,
					CreatedAt:  now,
					CreatedBy:  "admin",
				},
			},
			CreatedAt: now,
			CreatedBy: "admin",
		},
		{
			ID:          "qb2",
			Name:        "Database Management",
			Subject:     "Information Technology",
			Description: "Questions on SQL, normalization, and database design",
			Questions: []domain.Question{
				{
					ID:         "q6",
					Text:       "What is the purpose of normalization in database design?",
					Subject:    "Information Technology",
					Topic:      "Database",
					Difficulty: domain.Medium,
					Type:       domain.LongAnswer,
					Marks:      5,
					CreatedAt:  now,
					CreatedBy:  "admin",
				},
				{
					ID:            "q7",
					Text:          "Which normal form eliminates transitive dependencies?",
					Subject:       "Information Technology",
					Topic:         "Database",
					Difficulty:    domain.Medium,
					Type:          domain.MultipleChoice,
					Marks:         2,
					Options:       []string{"1NF", "2NF", "3NF", "BCNF"},
					CorrectAnswer: "3NF",
					CreatedAt:     now,
					CreatedBy:     "admin",
				},
			},
			CreatedAt: now,
			CreatedBy: "admin",
		},
	}
}

func samplePatterns() []domain.ExamPattern {
	return []domain.ExamPattern{
		{
			ID:         "pattern-1",
			Name:       "Standard Mid-Term",
			TotalMarks: 50,
			Duration:   120,
			Sections: []domain.ExamSection{
				{
					Name:                   "Multiple Choice Questions",
					QuestionTypes:          []domain.QuestionType{domain.MultipleChoice},
					QuestionCount:          15,
					DifficultyDistribution: domain.DifficultyDistribution{Easy: 40, Medium: 40, Hard: 20},
					MarksPerQuestion:       1,
				},
				{
					Name:                   "Short Answer Questions",
					QuestionTypes:          []domain.QuestionType{domain.ShortAnswer},
					QuestionCount:          5,
					DifficultyDistribution: domain.DifficultyDistribution{Easy: 30, Medium: 50, Hard: 20},
					MarksPerQuestion:       3,
				},
				{
					Name:                   "Long Answer Questions",
					QuestionTypes:          []domain.QuestionType{domain.LongAnswer},
					QuestionCount:          2,
					DifficultyDistribution: domain.DifficultyDistribution{Easy: 0, Medium: 50, Hard: 50},
					MarksPerQuestion:       10,
				},
			},
		},
		{
			ID:         "pattern-2",
			Name:       "Quick Quiz",
			TotalMarks: 25,
			Duration:   30,
			Sections: []domain.ExamSection{
				{
					Name:                   "Multiple Choice Questions",
					QuestionTypes:          []domain.QuestionType{domain.MultipleChoice},
					QuestionCount:          15,
					DifficultyDistribution: domain.DifficultyDistribution{Easy: 40, Medium: 40, Hard: 20},
					MarksPerQuestion:       1,
				},
				{
					Name:                   "True/False Questions",
					QuestionTypes:          []domain.QuestionType{domain.TrueFalse},
					QuestionCount:          10,
					DifficultyDistribution: domain.DifficultyDistribution{Easy: 50, Medium: 50, Hard: 0},
					MarksPerQuestion:       1,
				},
			},
		},
	}
}
