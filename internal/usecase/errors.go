package usecase

import "errors"

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicate        = "DUPLICATE_DEAL"
	CodeInvalidTimestamp = "INVALID_TIMESTAMP"
	CodeUpstream         = "UPSTREAM_ERROR"
)

// DomainError é uma falha de regra de negócio (validação, duplicidade, timestamp).
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a CRM or transport failure.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o código do erro ou "" se não for um erro conhecido.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func upstreamError(action string, err error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeUpstream,
		Message: action + ": " + err.Error(),
		Err:     err,
	}
}
