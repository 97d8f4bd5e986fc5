// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Sentinel errors returned by the codec. Callers should match them with
// [errors.Is].
var (
	// ErrValidation is returned for malformed parameters, such as a
	// non-positive iteration count or a salt of the wrong size.
	ErrValidation = errors.New("invalid codec parameters")

	// ErrCrypto is returned when a cipher primitive is misused: wrong key or
	// iv length, or input that is not block aligned.
	ErrCrypto = errors.New("cipher primitive misuse")

	// ErrDecryption is returned when a blob cannot be opened. The message is
	// the same for a wrong key and for corrupted data.
	ErrDecryption = errors.New("decryption failed")
)

// decryptionError carries the internal reason of a failed decryption while
// presenting itself as [ErrDecryption]. The reason is available to loggers
// through [DecryptionCause] and never appears in Error().
type decryptionError struct {
	cause error
}

func (e *decryptionError) Error() string {
	return ErrDecryption.Error()
}

func (e *decryptionError) Is(target error) bool {
	return target == ErrDecryption
}

func (e *decryptionError) Unwrap() error {
	return e.cause
}

func newDecryptionError(cause string) error {
	return &decryptionError{cause: errors.New(cause)}
}

// DecryptionCause returns the internal reason behind a decryption failure,
// or nil if err is not one. It is meant for debug logs only.
func DecryptionCause(err error) error {
	var de *decryptionError
	if errors.As(err, &de) {
		return de.cause
	}
	return nil
}
