package usecase

import (
	"fmt"
	"strings"

	"github.com/xavierca1/deal-sync/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateDealInput(input CreateDealInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.DealName) == "" {
		errors = append(errors, ValidationError{"dealname", "is required"})
	}

	if input.Amount == nil {
		errors = append(errors, ValidationError{"amount", "is required"})
	}

	if strings.TrimSpace(input.CloseDate) == "" {
		errors = append(errors, ValidationError{"closedate", "is required"})
	} else if !isValidDate(input.CloseDate) {
		errors = append(errors, ValidationError{"closedate", "must be a valid date (YYYY-MM-DD)"})
	}

	if strings.TrimSpace(input.DealStage) == "" {
		errors = append(errors, ValidationError{"dealstage", "is required"})
	}

	errors = append(errors, validateLastUpdated(input.LastUpdated)...)

	return errors
}

func ValidateUpdateDealInput(input UpdateDealInput) []ValidationError {
	var errors []ValidationError

	hasID := strings.TrimSpace(input.ID) != ""
	hasName := strings.TrimSpace(input.DealName) != ""
	switch {
	case !hasID && !hasName:
		errors = append(errors, ValidationError{"id", "id or dealname is required"})
	case hasID && hasName:
		errors = append(errors, ValidationError{"id", "use either id or dealname, not both"})
	}

	if input.Amount == nil {
		errors = append(errors, ValidationError{"amount", "is required"})
	}

	if input.CloseDate != "" && !isValidDate(input.CloseDate) {
		errors = append(errors, ValidationError{"closedate", "must be a valid date (YYYY-MM-DD)"})
	}

	errors = append(errors, validateLastUpdated(input.LastUpdated)...)

	return errors
}

func validateLastUpdated(s string) []ValidationError {
	if strings.TrimSpace(s) == "" {
		return []ValidationError{{"last_updated", "is required"}}
	}
	if !isValidDate(s) {
		return []ValidationError{{"last_updated", "must be a valid date (YYYY-MM-DD)"}}
	}
	return nil
}

func isValidDate(dateStr string) bool {
	_, err := entity.ParseClientDate(dateStr)
	return err == nil
}

// normalizeDate reescreve a data no formato canônico do CRM (2024-09-30).
func normalizeDate(dateStr string) string {
	t, err := entity.ParseClientDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("2006-01-02")
}

func validationFailure(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}
