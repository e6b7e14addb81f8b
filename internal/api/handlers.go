package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/state"
)

type catalogResponse struct {
	Subjects     []catalog.Subject    `json:"subjects"`
	Difficulties []catalog.Difficulty `json:"difficulties"`
}

type selectionResponse struct {
	Subject    *catalog.Subject    `json:"subject"`
	Difficulty *catalog.Difficulty `json:"difficulty"`
	Ready      bool                `json:"ready"`
}

type messagesResponse struct {
	Messages []conversation.Message `json:"messages"`
	Loading  bool                   `json:"loading"`
	Phase    string                 `json:"phase"`
}

type turnResponse struct {
	UserMessage conversation.Message `json:"userMessage"`
	Reply       conversation.Message `json:"reply"`
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, catalogResponse{
		Subjects:     catalog.Subjects(),
		Difficulties: catalog.Difficulties(),
	})
}

func (h *Handler) selectionView() selectionResponse {
	var resp selectionResponse
	if s, ok := h.deps.Selection.Subject(); ok {
		resp.Subject = &s
	}
	if d, ok := h.deps.Selection.Difficulty(); ok {
		resp.Difficulty = &d
	}
	resp.Ready = resp.Subject != nil && resp.Difficulty != nil
	return resp
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.selectionView())
}

func (h *Handler) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SubjectID    string `json:"subjectId"`
		DifficultyID string `json:"difficultyId"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SubjectID == "" && payload.DifficultyID == "" {
		RespondError(w, http.StatusBadRequest, "subjectId or difficultyId is required")
		return
	}

	// Validate both before applying either so a bad request changes nothing.
	var (
		subject    catalog.Subject
		difficulty catalog.Difficulty
		ok         bool
	)
	if payload.SubjectID != "" {
		if subject, ok = catalog.SubjectByID(payload.SubjectID); !ok {
			RespondError(w, http.StatusBadRequest, "unknown subject: "+payload.SubjectID)
			return
		}
	}
	if payload.DifficultyID != "" {
		if difficulty, ok = catalog.DifficultyByID(payload.DifficultyID); !ok {
			RespondError(w, http.StatusBadRequest, "unknown difficulty: "+payload.DifficultyID)
			return
		}
	}

	if payload.SubjectID != "" {
		h.deps.Selection.SetSubject(subject)
	}
	if payload.DifficultyID != "" {
		h.deps.Selection.SetDifficulty(difficulty)
	}
	RespondJSON(w, http.StatusOK, h.selectionView())
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	c := h.deps.Controller
	RespondJSON(w, http.StatusOK, messagesResponse{
		Messages: c.Messages(),
		Loading:  c.Loading(),
		Phase:    c.Phase().String(),
	})
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		RespondError(w, http.StatusBadRequest, "content is required")
		return
	}
	if !h.deps.Selection.Ready() {
		RespondError(w, http.StatusConflict, "select a subject and difficulty first")
		return
	}

	turn, ok := h.deps.Controller.Begin(payload.Content)
	if !ok {
		RespondError(w, http.StatusConflict, "a response is already in progress")
		return
	}

	// The turn outlives a client that hangs up; its reply still lands in
	// the conversation.
	reply := turn.Resolve(context.WithoutCancel(r.Context()))
	if reply.Kind == conversation.KindError {
		h.logger.Warn("tutor request failed", "error", reply.Content, "evaluating", turn.Evaluating())
	}

	RespondJSON(w, http.StatusCreated, turnResponse{
		UserMessage: turn.UserMessage(),
		Reply:       reply,
	})
}

func (h *Handler) handleResetMessages(w http.ResponseWriter, r *http.Request) {
	h.deps.Controller.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.deps.Progress.Snapshot())
}

func (h *Handler) handlePatchProgress(w http.ResponseWriter, r *http.Request) {
	var update state.ProgressUpdate
	if err := decodeJSON(r, &update); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.deps.Progress.Update(update)
	RespondJSON(w, http.StatusOK, h.deps.Progress.Snapshot())
}

func (h *Handler) handleProgressChart(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, state.ChartData(h.deps.Progress.Snapshot()))
}

func (h *Handler) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	var a state.Achievement
	if err := decodeJSON(r, &a); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(a.Title) == "" {
		RespondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	h.deps.Progress.AddAchievement(a)
	RespondJSON(w, http.StatusCreated, a)
}
