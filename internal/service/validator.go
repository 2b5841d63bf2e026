package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/domain"
)

// CommandValidator checks command fields before a handler runs.
type CommandValidator struct {
	validate *validator.Validate
	clock    Clock
}

// NewCommandValidator creates a CommandValidator. clock decides what "in the
// future" means for due dates; nil uses the system clock.
func NewCommandValidator(clock Clock) *CommandValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	cv := &CommandValidator{validate: v, clock: clock}

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("future", cv.isFuture)
	_ = v.RegisterValidation("task_status", isTaskStatus)

	return cv
}

// Validate checks cmd and returns a *ValidationError describing every failing
// field, or nil when the command is valid.
func (cv *CommandValidator) Validate(cmd any) error {
	err := cv.validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = validationMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func (cv *CommandValidator) isFuture(fl validator.FieldLevel) bool {
	due, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return due.After(cv.clock.now())
}

func isTaskStatus(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.TaskStatus(fl.Field().Int()).IsValid()
	default:
		return false
	}
}

// validationMessage maps a field error to a user-facing message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be between %d and %d", fe.Field(), domain.MinPriority, domain.MaxPriority)
	case "min":
		return fmt.Sprintf("%s must be between %d and %d", fe.Field(), domain.MinPriority, domain.MaxPriority)
	case "future":
		return fmt.Sprintf("%s must be in the future", fe.Field())
	case "task_status":
		return "invalid status value"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
