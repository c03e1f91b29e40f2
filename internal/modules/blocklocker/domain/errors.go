package domain

import "errors"

// Domain errors for the block locker module.
var (
	// ErrAlreadyProtected is returned when locking a location that already has a protection.
	ErrAlreadyProtected = errors.New("this block is already locked")

	// ErrNotProtected is returned when an operation requires an existing protection.
	ErrNotProtected = errors.New("this block is not locked")

	// ErrNotOwner is returned when a non-owner attempts an owner-only operation.
	ErrNotOwner = errors.New("only the owner can do that")

	// ErrNotProtectable is returned when the clicked block kind cannot be locked.
	ErrNotProtectable = errors.New("this block cannot be locked")

	// ErrSelfTrust is returned when a player tries to trust themselves.
	ErrSelfTrust = errors.New("you cannot trust yourself")

	// ErrPersistence wraps failures reading or writing the protection snapshot.
	ErrPersistence = errors.New("protection data persistence failed")
)
