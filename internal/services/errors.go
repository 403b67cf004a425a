package services

import (
	"errors"
	"fmt"
	"strings"

	"delipucash/internal/store"
)

const (
	EntityResponse = "response"
	EntityUser     = "user"
)

// ErrInvalidInput 请求参数校验失败，包装时带上面向用户的提示
var ErrInvalidInput = errors.New("invalid input")

// NotFoundError 引用的回答或用户不存在
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	if e.Entity == "" {
		return "Not found"
	}
	return strings.ToUpper(e.Entity[:1]) + e.Entity[1:] + " not found"
}

// PersistenceError 存储层的其他失败，Op 是面向用户的概括描述
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// InvalidInputMessage 返回校验错误中面向用户的那一段
func InvalidInputMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}

// lookupErr 把 store.ErrNotFound 转成 NotFoundError，其余包成 PersistenceError
func lookupErr(entity, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return &PersistenceError{Op: op, Err: err}
}
