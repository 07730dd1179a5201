package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags & texts
	difficultyTag  = "difficulty"
	difficultyText = "{0} must be one of Easy, Medium, Hard"

	questionTypeTag  = "question_type"
	questionTypeText = "{0} must be a known question type"

	distributionTotalTag  = "distribution_total"
	distributionTotalText = "difficulty percentages must add up to 100%"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(difficultyTag, difficultyValidation)
	registerCustomTranslation(difficultyTag, difficultyText)
	_ = validate.RegisterValidation(questionTypeTag, questionTypeValidation)
	registerCustomTranslation(questionTypeTag, questionTypeText)

	validate.RegisterStructValidation(sectionStructValidation, ExamSection{})
	registerCustomTranslation(distributionTotalTag, distributionTotalText)
}

func registerCustomTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldError is used to indicate an error with a specific field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned when authored banks, questions or patterns are rejected.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (err *ValidationError) Error() string {
	if len(err.Fields) == 0 {
		return err.Err.Error()
	}
	parts := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return fmt.Sprintf("%v: %s", err.Err, strings.Join(parts, "; "))
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidateQuestion checks a question before it is added to a bank.
func ValidateQuestion(q Question) error {
	return Validate(q)
}

// ValidateBank checks bank metadata. Its questions are validated as they are added.
func ValidateBank(b QuestionBank) error {
	return Validate(b)
}

// ValidateSection checks one section, including that its percentages add up to 100.
func ValidateSection(s ExamSection) error {
	return Validate(s)
}

// ValidatePattern checks a pattern and every one of its sections.
func ValidatePattern(p ExamPattern) error {
	return Validate(p)
}

// ValidatePatternLayout is ValidatePattern without the percentage total rule.
// Patterns checked this way rely on the generator's distribution mode.
func ValidatePatternLayout(p ExamPattern) error {
	return validateStruct(p, func(fe validator.FieldError) bool {
		return fe.Tag() == distributionTotalTag
	})
}

// Validate runs the struct tags of v and translates failures into a *ValidationError.
func Validate(v interface{}) error {
	return validateStruct(v, nil)
}

func validateStruct(v interface{}, skip func(validator.FieldError) bool) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		if skip != nil && skip(fe) {
			continue
		}
		fields = append(fields, FieldError{
			Field: fieldPath(fe),
			Error: fe.Translate(translator),
		})
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Err: ErrValidation, Fields: fields}
}

// fieldPath drops the root struct name from the namespace, e.g. "sections[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Custom Validators

func difficultyValidation(fl validator.FieldLevel) bool {
	d := Difficulty(fl.Field().String())
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

func questionTypeValidation(fl validator.FieldLevel) bool {
	t := QuestionType(fl.Field().String())
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// sectionStructValidation does ExamSection's struct level validation
func sectionStructValidation(sl validator.StructLevel) {
	if s, ok := sl.Current().Interface().(ExamSection); ok {
		if s.DifficultyDistribution.Total() != 100 {
			sl.ReportError(s.DifficultyDistribution, "difficultyDistribution", "DifficultyDistribution", distributionTotalTag, "")
		}
	}
}

// MarksMismatch is a non-fatal warning: the declared total differs from the sections' sum.
type MarksMismatch struct {
	Declared   int `json:"declared"`
	Calculated int `json:"calculated"`
}

func (m MarksMismatch) String() string {
	return fmt.Sprintf("total marks from sections (%d) doesn't match the declared total (%d)", m.Calculated, m.Declared)
}

// CheckMarks returns a warning when the pattern's declared total marks do not
// match the sum of its sections.
func CheckMarks(p ExamPattern) *MarksMismatch {
	calculated := p.SectionMarks()
	if calculated == p.TotalMarks {
		return nil
	}
	return &MarksMismatch{Declared: p.TotalMarks, Calculated: calculated}
}
