package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
	"exam-paper-service/internal/generator"
	"exam-paper-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.PaperService) {
	t.Helper()
	catalog := memory.NewCatalogCache(memory.NewStaticCatalog([]domain.QuestionBank{sampleBank()}, []domain.ExamPattern{samplePattern()}), time.Minute)
	papers := app.NewPaperService(catalog, catalog, memory.NewPaperStore(), generator.New(generator.WithSeed(3)), nil)

	mux := http.NewServeMux()
	NewHandler(papers, app.NewCatalogService(catalog)).Register(mux)
	mux.HandleFunc("/ws/papers", NewFeedHandler(papers).ServeWS)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, papers
}

func TestGeneratePaperEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/papers", map[string]string{
		"name": "CS Midterm", "bankId": "qb1", "patternId": "pattern-1",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var res app.GenerateResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Paper.Questions) != 10 || res.Paper.Subject != "Computer Science" {
		t.Fatalf("unexpected paper %+v", res.Paper)
	}

	get, err := http.Get(server.URL + "/papers/" + res.Paper.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("expected stored paper, got %d", get.StatusCode)
	}
}

func TestGeneratePaperErrorStatuses(t *testing.T) {
	server, _ := newTestServer(t)

	cases := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"short name", map[string]string{"name": "X", "bankId": "qb1", "patternId": "pattern-1"}, http.StatusBadRequest},
		{"unknown bank", map[string]string{"name": "Exam", "bankId": "nope", "patternId": "pattern-1"}, http.StatusNotFound},
		{"unknown pattern", map[string]string{"name": "Exam", "bankId": "qb1", "patternId": "nope"}, http.StatusNotFound},
		{"wrong subject", map[string]string{"name": "Exam", "subject": "Physics", "bankId": "qb1", "patternId": "pattern-1"}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		resp := postJSON(t, server.URL+"/papers", tc.body)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
	}

	resp, err := http.Post(server.URL+"/papers", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.StatusCode)
	}
}

func TestPatternValidationFields(t *testing.T) {
	server, _ := newTestServer(t)

	pattern := samplePattern()
	pattern.ID = ""
	pattern.Sections[0].DifficultyDistribution = domain.DifficultyDistribution{Easy: 50, Medium: 30, Hard: 10}

	resp := postJSON(t, server.URL+"/patterns", pattern)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Fields) == 0 {
		t.Fatalf("expected field errors, got %+v", payload)
	}
}

func TestPaperFeedWebSocket(t *testing.T) {
	server, papers := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws/papers"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readNext(conn, t, "subscribed")

	res, err := papers.Generate(context.Background(), app.GenerateRequest{Name: "Feed Paper", BankID: "qb1", PatternID: "pattern-1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	payload := readNext(conn, t, domain.PaperGenerated)
	if payload["paperId"] != res.Paper.ID {
		t.Fatalf("expected event for %s, got %v", res.Paper.ID, payload["paperId"])
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) map[string]any {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read %s: %v", expect, err)
	}
	if msg.Type != expect {
		t.Fatalf("expected %s, got %s", expect, msg.Type)
	}
	return msg.Payload
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func sampleBank() domain.QuestionBank {
	bank := domain.QuestionBank{ID: "qb1", Name: "Computer Science Fundamentals", Subject: "Computer Science"}
	difficulties := []domain.Difficulty{domain.Easy, domain.Easy, domain.Easy, domain.Easy, domain.Easy, domain.Medium, domain.Medium, domain.Medium, domain.Hard, domain.Hard}
	for i, d := range difficulties {
		bank.Questions = append(bank.Questions, domain.Question{
			ID:         fmt.Sprintf("q%d", i+1),
			Text:       fmt.Sprintf("Sample question number %d", i+1),
			Subject:    "Computer Science",
			Topic:      "Basics",
			Difficulty: d,
			Type:       domain.MultipleChoice,
			Marks:      1,
		})
	}
	return bank
}

func samplePattern() domain.ExamPattern {
	return domain.ExamPattern{
		ID:         "pattern-1",
		Name:       "Quick Quiz",
		TotalMarks: 10,
		Duration:   30,
		Sections: []domain.ExamSection{{
			Name:                   "Section A",
			QuestionTypes:          []domain.QuestionType{domain.MultipleChoice},
			QuestionCount:          10,
			DifficultyDistribution: domain.DifficultyDistribution{Easy: 50, Medium: 30, Hard: 20},
			MarksPerQuestion:       1,
		}},
	}
}
