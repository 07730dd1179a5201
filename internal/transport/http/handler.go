package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
)

// Handler exposes the paper and catalog use cases as JSON endpoints.
type Handler struct {
	papers  *app.PaperService
	catalog *app.CatalogService
}

func NewHandler(papers *app.PaperService, catalog *app.CatalogService) *Handler {
	return &Handler{papers: papers, catalog: catalog}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /papers", h.generatePaper)
	mux.HandleFunc("GET /papers", h.listPapers)
	mux.HandleFunc("GET /papers/subjects", h.paperSubjects)
	mux.HandleFunc("GET /papers/{id}", h.getPaper)
	mux.HandleFunc("POST /papers/{id}/duplicate", h.duplicatePaper)
	mux.HandleFunc("DELETE /papers/{id}", h.deletePaper)

	mux.HandleFunc("POST /banks", h.createBank)
	mux.HandleFunc("GET /banks/{id}", h.getBank)
	mux.HandleFunc("DELETE /banks/{id}", h.deleteBank)
	mux.HandleFunc("POST /banks/{id}/questions", h.saveQuestion)
	mux.HandleFunc("DELETE /banks/{id}/questions/{questionId}", h.removeQuestion)

	mux.HandleFunc("POST /patterns", h.savePattern)
	mux.HandleFunc("GET /patterns/{id}", h.getPattern)
	mux.HandleFunc("DELETE /patterns/{id}", h.deletePattern)
}

type errorPayload struct {
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

type patternResult struct {
	Pattern  domain.ExamPattern `json:"pattern"`
	Warnings []string           `json:"warnings,omitempty"`
}

func (h *Handler) generatePaper(w http.ResponseWriter, r *http.Request) {
	var req app.GenerateRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.papers.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) listPapers(w http.ResponseWriter, r *http.Request) {
	filter := app.PaperFilter{Query: r.URL.Query().Get("q")}
	for _, subject := range r.URL.Query()["subject"] {
		for _, s := range strings.Split(subject, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Subjects = append(filter.Subjects, s)
			}
		}
	}
	papers, err := h.papers.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, papers)
}

func (h *Handler) paperSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.papers.Subjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *Handler) getPaper(w http.ResponseWriter, r *http.Request) {
	paper, err := h.papers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paper)
}

func (h *Handler) duplicatePaper(w http.ResponseWriter, r *http.Request) {
	paper, err := h.papers.Duplicate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paper)
}

func (h *Handler) deletePaper(w http.ResponseWriter, r *http.Request) {
	if err := h.papers.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createBank(w http.ResponseWriter, r *http.Request) {
	var bank domain.QuestionBank
	if !decode(w, r, &bank) {
		return
	}
	bank, err := h.catalog.CreateBank(r.Context(), bank)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bank)
}

func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.catalog.GetBank(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bank)
}

func (h *Handler) deleteBank(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBank(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveQuestion(w http.ResponseWriter, r *http.Request) {
	var q domain.Question
	if !decode(w, r, &q) {
		return
	}
	q, err := h.catalog.SaveQuestion(r.Context(), r.PathValue("id"), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) removeQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RemoveQuestion(r.Context(), r.PathValue("id"), r.PathValue("questionId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) savePattern(w http.ResponseWriter, r *http.Request) {
	var pattern domain.ExamPattern
	if !decode(w, r, &pattern) {
		return
	}
	pattern, warnings, err := h.catalog.SavePattern(r.Context(), pattern)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patternResult{Pattern: pattern, Warnings: warnings})
}

func (h *Handler) getPattern(w http.ResponseWriter, r *http.Request) {
	pattern, err := h.catalog.GetPattern(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pattern)
}

func (h *Handler) deletePattern(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePattern(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: verr.Err.Error(), Fields: verr.Fields})
	case errors.Is(err, domain.ErrBankNotFound),
		errors.Is(err, domain.ErrPatternNotFound),
		errors.Is(err, domain.ErrPaperNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrNoQuestionsForSubject),
		errors.Is(err, domain.ErrInsufficientQuestions),
		errors.Is(err, domain.ErrInvalidDistribution):
		writeJSON(w, http.StatusUnprocessableEntity, errorPayload{Message: err.Error()})
	default:
		log.Printf("request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "internal error"})
	}
}
