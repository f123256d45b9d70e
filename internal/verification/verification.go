// Package verification verifies that a headless run produced the expected screen output.
package verification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ErrDigestMismatch is returned when the screen digest differs from the expected one.
var ErrDigestMismatch = errors.New("screen digest mismatch")

// VerifyDigest compares the screen digest of a run with the expected digest.
// The comparison ignores case and surrounding whitespace.
func VerifyDigest(logger *log.Logger, expected, actual string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if expected == "" {
		return errors.New("no expected digest given")
	}
	if actual == "" {
		return errors.New("run did not produce a screen digest, use the headless frontend")
	}

	if expected != actual {
		logger.Debug("Screen digest differs",
			log.String("expected", expected),
			log.String("actual", actual))
		return fmt.Errorf("%w: expected %s, got %s", ErrDigestMismatch, expected, actual)
	}
	return nil
}
