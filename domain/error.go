// Package domain defines error types for the storefront.
package domain

import (
	"errors"
	"fmt"
)

// InvalidArgumentError is returned when constructor or setter input is malformed
type InvalidArgumentError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidArgumentError
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidArgumentError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentError)
	return ok
}

// InactiveProductError is returned when a purchase targets a deactivated product
type InactiveProductError struct {
	Product string
}

// Error implements the error interface for InactiveProductError
func (e *InactiveProductError) Error() string {
	return fmt.Sprintf("product is not active: name=%s", e.Product)
}

// Is allows proper error type checking with errors.Is()
func (e *InactiveProductError) Is(target error) bool {
	_, ok := target.(*InactiveProductError)
	return ok
}

// InsufficientStockError is returned when the requested quantity exceeds stock
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough quantity in stock: name=%s, requested=%d, available=%d",
		e.Product, e.Requested, e.Available)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// LimitExceededError is returned when a limited product is ordered above its cap
type LimitExceededError struct {
	Product   string
	Requested int
	Limit     int
}

// Error implements the error interface for LimitExceededError
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("order limit exceeded: name=%s, requested=%d, limit=%d",
		e.Product, e.Requested, e.Limit)
}

// Is allows proper error type checking with errors.Is()
func (e *LimitExceededError) Is(target error) bool {
	_, ok := target.(*LimitExceededError)
	return ok
}

// ProductNotFoundError is returned when a product is not part of the store catalog
type ProductNotFoundError struct {
	Product string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found in store: name=%s", e.Product)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// DuplicateProductError is returned when a product is added to a catalog that already holds it
type DuplicateProductError struct {
	Product string
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: name=%s already in store", e.Product)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// Helper functions for creating errors with context

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(field, reason string, value interface{}) error {
	return &InvalidArgumentError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewInactiveProductError creates a new InactiveProductError
func NewInactiveProductError(product string) error {
	return &InactiveProductError{Product: product}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(product string, requested, available int) error {
	return &InsufficientStockError{Product: product, Requested: requested, Available: available}
}

// NewLimitExceededError creates a new LimitExceededError
func NewLimitExceededError(product string, requested, limit int) error {
	return &LimitExceededError{Product: product, Requested: requested, Limit: limit}
}

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(product string) error {
	return &ProductNotFoundError{Product: product}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(product string) error {
	return &DuplicateProductError{Product: product}
}

// Type assertion helpers for use with errors.As()

// IsInvalidArgumentError checks if an error is an InvalidArgumentError
func IsInvalidArgumentError(err error) bool {
	var iae *InvalidArgumentError
	return errors.As(err, &iae)
}

// IsInactiveProductError checks if an error is an InactiveProductError
func IsInactiveProductError(err error) bool {
	var ipe *InactiveProductError
	return errors.As(err, &ipe)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// IsLimitExceededError checks if an error is a LimitExceededError
func IsLimitExceededError(err error) bool {
	var lee *LimitExceededError
	return errors.As(err, &lee)
}

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}
