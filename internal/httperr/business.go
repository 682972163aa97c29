package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindAccessDenied
	KindNotFound
	KindInvalidTransition
	KindConflict
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindAccessDenied:
		return "access_denied"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

// Status devolve o código HTTP equivalente ao tipo de erro.
func (k Kind) Status() int {
	switch k {
	case KindInvalidInput, KindInvalidTransition:
		return http.StatusBadRequest
	case KindAccessDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string

	// Payload carrega dados extras para o chamador (ex.: agendamentos em conflito).
	Payload any

	Err error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func InvalidInput(code, message string) error {
	return New(KindInvalidInput, code, message)
}

func AccessDenied(code, message string) error {
	return New(KindAccessDenied, code, message)
}

func NotFoundErr(code, message string) error {
	return New(KindNotFound, code, message)
}

func InvalidTransition(code, message string) error {
	return New(KindInvalidTransition, code, message)
}

func Conflict(code, message string, payload any) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message, Payload: payload}
}

// Persistence embrulha uma falha do banco com contexto; a causa continua
// acessível via errors.Is/As.
func Persistence(op string, err error) error {
	return BusinessError{
		Kind:    KindPersistence,
		Code:    "persistence_failure",
		Message: "Erro ao acessar o banco de dados.",
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindPersistence
}

func As(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
