package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/handler/http/response"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
)

type LedgerHandler interface {
	SubmitAttendance(w http.ResponseWriter, r *http.Request)
	SubmitOvertime(w http.ResponseWriter, r *http.Request)
	SubmitReimbursement(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{ledgerService: ledgerService}
}

func (h *ledgerHandlerImpl) SubmitAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.SubmitAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.AlreadyRecorded {
		response.SuccessWithMessage(w, "Attendance already recorded for today", result)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *ledgerHandlerImpl) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	var req ledger.SubmitOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.ledgerService.SubmitOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime recorded", result)
}

func (h *ledgerHandlerImpl) SubmitReimbursement(w http.ResponseWriter, r *http.Request) {
	var req ledger.SubmitReimbursementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.ledgerService.SubmitReimbursement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reimbursement recorded", result)
}

func (h *ledgerHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period ID", nil)
		return
	}

	result, err := h.ledgerService.ListMine(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
