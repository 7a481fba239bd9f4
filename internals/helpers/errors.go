package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEditWindowClosed = errors.New("submission is no longer editable")
	ErrSubmissionLimit  = errors.New("maximum submissions reached for this assignment")
	ErrAmbiguousMentor  = errors.New("caller has more than one mentor; pass course_id")
	ErrNotEnrolled      = errors.New("caller is not enrolled in this course")
)

// StatusFromError: sentinel/PG code → HTTP status. Selain yang dikenal → 500.
func StatusFromError(err error) int {
	if err == nil {
		return fiber.StatusOK
	}
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, helperAuth.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, ErrAmbiguousMentor), errors.Is(err, ErrSubmissionLimit):
		return fiber.StatusConflict
	case errors.Is(err, ErrEditWindowClosed), errors.Is(err, ErrNotEnrolled):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	}
	switch PGCode(err) {
	case PGUniqueViolation:
		return fiber.StatusConflict
	case PGForeignKeyViolation, PGCheckViolation:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ValidationErrors mengubah validator.ValidationErrors jadi map field → pesan.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ves {
		field := strings.ToLower(fe.Field())
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[field] = append(out[field], msg)
	}
	return out
}
