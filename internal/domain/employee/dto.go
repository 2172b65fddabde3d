package employee

import "github.com/shopspring/decimal"

type EmployeeResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Salary   decimal.Decimal `json:"salary"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Username: e.Username,
		FullName: e.FullName,
		Salary:   e.Salary,
	}
}

func ToResponses(employees []Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, ToResponse(e))
	}
	return result
}
