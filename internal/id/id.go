package id

import (
	"fmt"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	domainerrors "github.com/listenupapp/pantry/internal/errors"
)

// suffixLength is the number of NanoID characters appended after the
// timestamp. 12 characters of the 64-symbol alphabet carry 72 random bits.
const suffixLength = 12

// DefaultMaxAttempts bounds NewDraftID retries on an exact collision.
const DefaultMaxAttempts = 5

// now is swapped in tests to force same-millisecond generation.
var now = time.Now

// Generate creates a prefixed unique ID from a millisecond timestamp and a NanoID suffix.
// Format: prefix-<unix ms in base36>-<nanoid> (e.g., "mp-lx2k9a1c-V1StGXR8_Z5j")
//
// The timestamp keeps ids roughly creation-ordered without a central
// counter; the suffix keeps ids created within the same millisecond distinct.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New(suffixLength)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	ts := strconv.FormatInt(now().UnixMilli(), 36)
	return prefix + "-" + ts + "-" + suffix, nil
}

// NewDraftID generates an id that exists reports as unused.
// It retries up to maxAttempts times and returns an ID_GENERATION_FAILURE
// error when every candidate collided or entropy was unavailable.
func NewDraftID(prefix string, maxAttempts int, exists func(string) bool) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for range maxAttempts {
		candidate, err := Generate(prefix)
		if err != nil {
			lastErr = err
			continue
		}
		if exists != nil && exists(candidate) {
			continue
		}
		return candidate, nil
	}

	err := domainerrors.IDGenerationFailuref("no unique %s id after %d attempts", prefix, maxAttempts)
	if lastErr != nil {
		return "", err.WithCause(lastErr)
	}
	return "", err
}
