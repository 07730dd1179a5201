package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exam-paper-service/internal/config"
	"exam-paper-service/internal/domain"
)

const patternYAML = `
id: pattern-quiz
name: Quick Quiz
totalMarks: 10
duration: 30
sections:
  - name: MCQ
    questionTypes: ["Multiple Choice"]
    questionCount: 10
    difficultyDistribution: {easy: 50, medium: 30, hard: 20}
    marksPerQuestion: 1
`

func writeBank(t *testing.T, dir string, easy, medium, hard int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("id: qb1\nname: Data Structures Basics\nsubject: Computer Science\nquestions:\n")
	n := 0
	for _, tier := range []struct {
		d     string
		count int
	}{{"Easy", easy}, {"Medium", medium}, {"Hard", hard}} {
		for i := 0; i < tier.count; i++ {
			n++
			fmt.Fprintf(&b, "  - id: q%d\n    text: Question number %d\n    subject: Computer Science\n    topic: Basics\n    difficulty: %s\n    type: Multiple Choice\n    marks: 1\n", n, n, tier.d)
		}
	}
	path := filepath.Join(dir, "bank.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

func writePattern(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "pattern.yaml", patternYAML)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestGenerateCommandPrintsPaper(t *testing.T) {
	dir := t.TempDir()
	bank := writeBank(t, dir, 5, 3, 2)
	pattern := writePattern(t, dir)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"generate", "--config", filepath.Join(dir, "missing.yaml"), "--bank", bank, "--pattern", pattern, "--name", "CS Quiz", "--seed", "42"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var paper domain.GeneratedPaper
	if err := json.Unmarshal(out.Bytes(), &paper); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if paper.Name != "CS Quiz" || paper.Subject != "Computer Science" || len(paper.Questions) != 10 {
		t.Fatalf("unexpected paper %+v", paper)
	}
	if paper.TotalMarks != 10 || paper.Duration != 30 || paper.CreatedBy != "admin" {
		t.Fatalf("unexpected header %+v", paper)
	}
}

func TestRunGenerateIsReproducibleWithSeed(t *testing.T) {
	dir := t.TempDir()
	opts := &generateOptions{bankPath: writeBank(t, dir, 8, 6, 4), patternPath: writePattern(t, dir), name: "Seeded"}
	cfg := config.Config{}
	seed := int64(99)
	cfg.Generator.Seed = &seed

	first, err := runGenerate(cfg, opts)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := runGenerate(cfg, opts)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	for i := range first.Questions {
		if first.Questions[i].ID != second.Questions[i].ID {
			t.Fatalf("selection differs at %d: %s vs %s", i, first.Questions[i].ID, second.Questions[i].ID)
		}
	}
}

func TestRunGenerateReportsShortTier(t *testing.T) {
	dir := t.TempDir()
	opts := &generateOptions{bankPath: writeBank(t, dir, 4, 3, 2), patternPath: writePattern(t, dir), name: "Short"}

	_, err := runGenerate(config.Config{}, opts)
	var insufficient *domain.InsufficientQuestionsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient questions, got %v", err)
	}
	if insufficient.Difficulty != domain.Easy || insufficient.Required != 5 || insufficient.Available != 4 {
		t.Fatalf("unexpected error detail %+v", insufficient)
	}
}

func TestSampleCatalogIsValid(t *testing.T) {
	for _, p := range samplePatterns() {
		if err := domain.ValidatePattern(p); err != nil {
			t.Fatalf("pattern %s invalid: %v", p.ID, err)
		}
	}
	for _, b := range sampleBanks() {
		for _, q := range b.Questions {
			if err := domain.ValidateQuestion(q); err != nil {
				t.Fatalf("question %s invalid: %v", q.ID, err)
			}
		}
	}
}

const shortDistributionYAML = `
id: pattern-short
name: Short Split
totalMarks: 10
duration: 30
sections:
  - name: MCQ
    questionTypes: ["Multiple Choice"]
    questionCount: 10
    difficultyDistribution: {easy: 50, medium: 30, hard: 0}
    marksPerQuestion: 1
`

func TestRunGenerateDistributionModes(t *testing.T) {
	dir := t.TempDir()
	opts := &generateOptions{
		bankPath:    writeBank(t, dir, 10, 10, 10),
		patternPath: writeFile(t, dir, "short.yaml", shortDistributionYAML),
		name:        "Short Split",
	}

	paper, err := runGenerate(config.Config{}, opts)
	if err != nil {
		t.Fatalf("expected hard to absorb the remainder, got %v", err)
	}
	counts := map[domain.Difficulty]int{}
	for _, q := range paper.Questions {
		counts[q.Difficulty]++
	}
	if counts[domain.Easy] != 5 || counts[domain.Medium] != 3 || counts[domain.Hard] != 2 {
		t.Fatalf("expected 5/3/2 split, got %v", counts)
	}

	strict := config.Config{}
	strict.Generator.StrictDistribution = true
	if _, err := runGenerate(strict, opts); !errors.Is(err, domain.ErrInvalidDistribution) {
		t.Fatalf("expected invalid distribution in strict mode, got %v", err)
	}
}

func TestGenerateCommandStrictFlag(t *testing.T) {
	dir := t.TempDir()
	bank := writeBank(t, dir, 10, 10, 10)
	pattern := writeFile(t, dir, "short.yaml", shortDistributionYAML)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--config", filepath.Join(dir, "missing.yaml"), "--bank", bank, "--pattern", pattern, "--name", "Strict", "--strict"})
	if err := cmd.Execute(); !errors.Is(err, domain.ErrInvalidDistribution) {
		t.Fatalf("expected invalid distribution, got %v", err)
	}
}

func TestRunGenerateDefaultsQuestionSubject(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("id: qb1\nname: Data Structures Basics\nsubject: Computer Science\nquestions:\n")
	for i, d := range []string{"Easy", "Easy", "Easy", "Easy", "Easy", "Medium", "Medium", "Medium", "Hard", "Hard"} {
		fmt.Fprintf(&b, "  - id: q%d\n    text: Question number %d\n    topic: Basics\n    difficulty: %s\n    type: Multiple Choice\n    marks: 1\n", i+1, i+1, d)
	}
	opts := &generateOptions{
		bankPath:    writeFile(t, dir, "bank.yaml", b.String()),
		patternPath: writePattern(t, dir),
		name:        "No Subjects",
	}

	paper, err := runGenerate(config.Config{}, opts)
	if err != nil {
		t.Fatalf("expected questions to take the bank subject, got %v", err)
	}
	for _, q := range paper.Questions {
		if q.Subject != "Computer Science" {
			t.Fatalf("expected bank subject on %s, got %q", q.ID, q.Subject)
		}
	}
}

func TestGenerateCommandZeroSeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	bank := writeBank(t, dir, 8, 6, 4)
	pattern := writePattern(t, dir)

	run := func() []string {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"generate", "--config", filepath.Join(dir, "missing.yaml"), "--bank", bank, "--pattern", pattern, "--name", "Zero Seed", "--seed", "0"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
		var paper domain.GeneratedPaper
		if err := json.Unmarshal(out.Bytes(), &paper); err != nil {
			t.Fatalf("decode output: %v", err)
		}
		ids := make([]string, 0, len(paper.Questions))
		for _, q := range paper.Questions {
			ids = append(ids, q.ID)
		}
		return ids
	}

	first, second := run(), run()
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Fatalf("seed 0 should be reproducible: %v vs %v", first, second)
	}
}

func TestResolvePort(t *testing.T) {
	cfg := config.Config{}
	if got := resolvePort("", cfg); got != "8080" {
		t.Fatalf("expected 8080 fallback, got %s", got)
	}
	cfg.Server.Port = "9090"
	if got := resolvePort("", cfg); got != "9090" {
		t.Fatalf("expected config port, got %s", got)
	}
	if got := resolvePort("7070", cfg); got != "7070" {
		t.Fatalf("expected flag port, got %s", got)
	}
}
