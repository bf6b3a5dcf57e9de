package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput 请求体校验失败或引用的记录不存在（HTTP 400）
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden 调用方无权执行该操作（HTTP 403）
	ErrForbidden = errors.New("forbidden")
	// ErrSubscriptionRequired 仪表盘要求有效订阅（HTTP 403）
	ErrSubscriptionRequired = fmt.Errorf("%w: active subscription required", ErrForbidden)
)

// InputError 携带面向调用方的提示信息
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, message string) error {
	return &InputError{Field: field, Message: message}
}
