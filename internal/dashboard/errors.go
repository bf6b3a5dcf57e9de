package dashboard

import "errors"

// ErrValidation 请求参数不合法（HTTP 400），在计算开始之前返回
var ErrValidation = errors.New("validation error")

// ValidationError 携带面向调用方的提示信息
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
