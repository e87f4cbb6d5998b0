// Package fault defines the error taxonomy shared by every accounting
// component.
//
// All invariant violations surface as *Error values carrying a Code.
// Callers classify failures with Is or CodeOf rather than matching on
// message text; messages are human-readable and may change.
package fault

import (
	"errors"
	"fmt"
)

// Code categorizes an accounting failure.
type Code string

const (
	// OutOfRange indicates a value outside its permitted numeric range.
	OutOfRange Code = "OUT_OF_RANGE"

	// NegativeAmount indicates a scaled amount below zero.
	NegativeAmount Code = "NEGATIVE_AMOUNT"

	// ParseError indicates text that is not a valid number.
	ParseError Code = "PARSE_ERROR"

	// PercentageTooHigh indicates a royalty above 10000 basis points.
	PercentageTooHigh Code = "PERCENTAGE_TOO_HIGH"

	// InsufficientDeposit indicates the attached deposit does not cover
	// storage growth plus deductions.
	InsufficientDeposit Code = "INSUFFICIENT_DEPOSIT"

	// InvalidSeparator indicates a manual token id containing the group
	// separator.
	InvalidSeparator Code = "INVALID_SEPARATOR"

	// InvalidCopies indicates manual-token metadata declaring copies other
	// than 1.
	InvalidCopies Code = "INVALID_COPIES"

	// UnexpectedPrice indicates manual-token metadata carrying a price.
	UnexpectedPrice Code = "UNEXPECTED_PRICE"

	// DecimalsMismatch indicates arithmetic between amounts of different
	// precision.
	DecimalsMismatch Code = "DECIMALS_MISMATCH"

	// InvalidTokenID indicates a token id that is neither manual nor a group item.
	InvalidTokenID Code = "INVALID_TOKEN_ID"

	// InvalidAccountID indicates an account id that breaks the naming rules.
	InvalidAccountID Code = "INVALID_ACCOUNT_ID"

	// TooManyBeneficiaries indicates a royalty table above the payout limit.
	TooManyBeneficiaries Code = "TOO_MANY_BENEFICIARIES"

	// NameTooLong indicates an identifier above its length limit.
	NameTooLong Code = "NAME_TOO_LONG"

	// PriceOutOfRange indicates a resale price outside the configured bounds.
	PriceOutOfRange Code = "PRICE_OUT_OF_RANGE"

	// NotFound indicates a missing group, token, or owner.
	NotFound Code = "NOT_FOUND"

	// AlreadyExists indicates a duplicate group, token, or owner.
	AlreadyExists Code = "ALREADY_EXISTS"

	// Unauthorized indicates a caller outside the owner set attempting an
	// administrative call.
	Unauthorized Code = "UNAUTHORIZED"
)

// Error is a classified accounting failure.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Details contains additional context. Amounts are base-10 strings.
	Details map[string]string
}

// Error implements the error interface.
// Only the message is returned so that callers that surface it verbatim
// (deposit shortfalls in particular) see the exact text.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// With returns e with an additional detail attached.
func (e *Error) With(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if
// err is not classified.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// Is reports whether err carries the given code.
// Uses errors.As to handle wrapped errors.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// Detail returns a detail value from the first *Error in err's chain.
func Detail(err error, key string) (string, bool) {
	var fe *Error
	if !errors.As(err, &fe) || fe.Details == nil {
		return "", false
	}
	v, ok := fe.Details[key]
	return v, ok
}
