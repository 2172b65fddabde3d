package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/handler/http/response"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
)

type PeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Run(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type periodHandlerImpl struct {
	periodService  period.PeriodService
	payrollService payslip.PayrollService
}

func NewPeriodHandler(periodService period.PeriodService, payrollService payslip.PayrollService) PeriodHandler {
	return &periodHandlerImpl{
		periodService:  periodService,
		payrollService: payrollService,
	}
}

func (h *periodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req period.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.periodService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

func (h *periodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.periodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *periodHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period ID", nil)
		return
	}

	result, err := h.payrollService.Run(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll processed", result)
}

func (h *periodHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period ID", nil)
		return
	}

	result, err := h.payrollService.Summary(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
