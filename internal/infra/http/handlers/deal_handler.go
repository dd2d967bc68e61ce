package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/infra/http/middleware"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

type DealHandler struct {
	FindDealUC   *usecase.FindDealUseCase
	CreateDealUC *usecase.CreateDealUseCase
	UpdateDealUC *usecase.UpdateDealUseCase
	ListDealsUC  *usecase.ListDealsUseCase
	Logger       *zap.Logger
}

func NewDealHandler(
	find *usecase.FindDealUseCase,
	create *usecase.CreateDealUseCase,
	update *usecase.UpdateDealUseCase,
	list *usecase.ListDealsUseCase,
	logger *zap.Logger,
) *DealHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DealHandler{
		FindDealUC:   find,
		CreateDealUC: create,
		UpdateDealUC: update,
		ListDealsUC:  list,
		Logger:       logger,
	}
}

// HandleGet (GET /deals/{deal_name})
func (h *DealHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "deal_name")

	out, err := h.FindDealUC.Execute(r.Context(), name)
	if err != nil {
		h.writeUseCaseError(w, r, "find", err)
		return
	}
	middleware.RecordDealOutcome("find", string(out.Outcome))

	if out.Outcome == usecase.OutcomeNotFound {
		writeErrorResponse(w, http.StatusNotFound, "DEAL_NOT_FOUND", out.Message)
		return
	}
	writeJSON(w, http.StatusOK, out.Deal)
}

// HandleCreate (POST /deals, POST /create-deal)
func (h *DealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateDealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	out, err := h.CreateDealUC.Execute(r.Context(), input)
	if err != nil {
		h.writeUseCaseError(w, r, "create", err)
		return
	}
	middleware.RecordDealOutcome("create", string(out.Outcome))

	writeJSON(w, http.StatusOK, out.Deal)
}

// HandleUpdate (PUT /deals, PUT /update-deal)
func (h *DealHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateDealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	out, err := h.UpdateDealUC.Execute(r.Context(), input)
	if err != nil {
		h.writeUseCaseError(w, r, "update", err)
		return
	}
	middleware.RecordDealOutcome("update", string(out.Outcome))

	switch out.Outcome {
	case usecase.OutcomeNotFound:
		writeErrorResponse(w, http.StatusNotFound, "DEAL_NOT_FOUND", out.Message)
	case usecase.OutcomeSkipped:
		writeJSON(w, http.StatusOK, MessageResponse{Message: out.Message})
	default:
		writeJSON(w, http.StatusOK, out.Deal)
	}
}

// HandleList (GET /deals?limit=N)
func (h *DealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListDealsInput{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "limit must be a positive integer")
			return
		}
		input.Limit = limit
	}

	out, err := h.ListDealsUC.Execute(r.Context(), input)
	if err != nil {
		h.writeUseCaseError(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *DealHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	code := usecase.ErrorCode(err)
	middleware.RecordDealOutcome(operation, "ERROR")

	message := err.Error()
	switch code {
	case usecase.CodeValidation, usecase.CodeDuplicate:
		writeErrorResponse(w, http.StatusBadRequest, code, message)
		return
	case "":
		code = "INTERNAL_ERROR"
		message = "An error occurred: " + message
	}

	h.Logger.Error("deal request failed",
		zap.String("operation", operation),
		zap.String("path", r.URL.Path),
		zap.String("code", code),
		zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, code, message)
}
