package period

import (
	"context"
	"time"

	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
)

type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if start, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.start = start
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if end, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.end = end
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the parsed dates. Validate must have been called first.
func (r *CreatePeriodRequest) Range() (start, end time.Time) {
	return r.start, r.end
}

type PeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Locked    bool   `json:"locked"`
}

func ToResponse(p Period) PeriodResponse {
	return PeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Locked:    p.Locked,
	}
}

func ToResponses(periods []Period) []PeriodResponse {
	result := make([]PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, ToResponse(p))
	}
	return result
}

type PeriodService interface {
	Create(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	List(ctx context.Context) ([]PeriodResponse, error)
	FindActiveCovering(ctx context.Context, date time.Time) (Period, error)
}
