package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/handler/http/response"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
)

type PayslipHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payrollService payslip.PayrollService
}

func NewPayslipHandler(payrollService payslip.PayrollService) PayslipHandler {
	return &payslipHandlerImpl{payrollService: payrollService}
}

func (h *payslipHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period ID", nil)
		return
	}

	result, err := h.payrollService.GenerateOwn(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", result)
}

func (h *payslipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period ID", nil)
		return
	}

	result, err := h.payrollService.GetOwn(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
