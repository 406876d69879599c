// Package services defines the business logic for accounts, authentication,
// and inbox messages. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer. In particular the three authentication failures below are distinct
// here so they can be logged precisely, but the handlers collapse all of them
// into one generic externally-visible message.
package services

import "errors"

// Authentication errors. All three map to a single generic response at the
// transport boundary; a client must never learn which one occurred.
var (
	// ErrUserNotFound indicates that no account exists for the given email.
	ErrUserNotFound = errors.New("no user found with this email")

	// ErrPasswordMissing is returned when the password input is absent or
	// empty. This is a deliberate short-circuit: empty input is never hashed.
	ErrPasswordMissing = errors.New("password is missing")

	// ErrPasswordMismatch indicates the password did not match the stored hash.
	ErrPasswordMismatch = errors.New("invalid password")
)

// Account errors.
var (
	// ErrEmailTaken is returned when registration is attempted with an email
	// that already has an account.
	ErrEmailTaken = errors.New("email already exists")
)

// Message errors.
var (
	// ErrMessageNotFound indicates the target message is absent from this
	// user's inbox. It deliberately does not distinguish "never existed"
	// from "already deleted".
	ErrMessageNotFound = errors.New("message not found or already deleted")

	// ErrRecipientNotFound indicates that inbound delivery addressed a
	// username with no account.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrNotAcceptingMessages is returned when the recipient has turned off
	// inbound delivery.
	ErrNotAcceptingMessages = errors.New("user is not accepting messages")

	// ErrEmptyContent is returned when a delivery request has no content.
	ErrEmptyContent = errors.New("content is empty")

	// ErrContentTooLong is returned when a delivery request exceeds the
	// configured content length limit.
	ErrContentTooLong = errors.New("content too long")
)
