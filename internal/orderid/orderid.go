package orderid

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidIdentifier is returned for anything that does not look like an
// order number. Callers must treat it exactly like "not found".
var ErrInvalidIdentifier = errors.New("invalid order identifier")

// Normalizer validates and canonicalizes caller-supplied order identifiers.
type Normalizer struct {
	pattern *regexp.Regexp
}

// New compiles the configured identifier pattern (default "^\d{4,6}$").
func New(pattern string) (*Normalizer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "compile order id pattern")
	}
	return &Normalizer{pattern: re}, nil
}

// Normalize trims whitespace, validates the trimmed identifier against the
// pattern, strips one leading "#" and parses the rest as an integer. The
// parse is a second gate: a pattern that admits non-numeric input still
// cannot produce a usable order number.
func (n *Normalizer) Normalize(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if !n.pattern.MatchString(s) {
		return 0, ErrInvalidIdentifier
	}
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidIdentifier
	}
	return v, nil
}
