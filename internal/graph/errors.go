package graph

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hmans/tasks/internal/task"
)

// CodeBadUserInput marks errors caused by invalid arguments.
const CodeBadUserInput = "BAD_USER_INPUT"

// InputError is returned by mutations whose arguments fail validation.
// graphql-go copies Extensions into the error's "extensions" member.
type InputError struct {
	Field   string
	Message string
	err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.err
}

// Extensions implements graphql-go's extension interface.
func (e *InputError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":  CodeBadUserInput,
		"field": e.Field,
	}
}

// inputError converts validation failures into InputError and passes other
// errors through unchanged.
func inputError(err error) error {
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		return &InputError{Field: ve.Field, Message: ve.Message, err: err}
	}
	return err
}

// panicLogger reports resolver panics through zap instead of the standard
// library logger graphql-go uses by default.
type panicLogger struct {
	log *zap.Logger
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error("graphql: panic occurred", zap.Any("panic", value), zap.Stack("stack"))
}
