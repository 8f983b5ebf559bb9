package generate

import (
	"fmt"
	mathrand "math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/getmockd/pactcore/pkg/contract"
)

const (
	digitCharset    = "0123456789"
	hexCharset      = "0123456789ABCDEF"
	alnumCharset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	printableLow    = 0x20
	printableHigh   = 0x7e
	maxRegexRepeats = 20
)

// intN returns a random int in [0, n) using the seeded source when present.
func (e *Engine) intN(n int) int {
	if n <= 0 {
		return 0
	}
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return mathrand.IntN(n)
}

// intRange returns a random int in [lo, hi].
func (e *Engine) intRange(lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, lo, hi)
	}
	return lo + e.intN(hi-lo+1), nil
}

func (e *Engine) boolean() bool {
	return e.intN(2) == 1
}

func (e *Engine) pick(charset string) byte {
	return charset[e.intN(len(charset))]
}

func (e *Engine) sample(charset string, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = e.pick(charset)
	}
	return string(b)
}

// Decimal returns a decimal number with exactly digits digits. The integer
// part never has a redundant leading zero: it is either "0" or starts with
// a non-zero digit.
func (e *Engine) Decimal(digits int) string {
	switch {
	case digits <= 0:
		return ""
	case digits == 1:
		return string(e.pick(digitCharset))
	case digits == 2:
		return string(e.pick(digitCharset)) + "." + string(e.pick(digitCharset))
	}
	sample := e.sample(digitCharset, digits+1)
	if strings.HasPrefix(sample, "00") {
		sample = string(e.pick(digitCharset[1:])) + sample
	}
	pos := 1 + e.intN(digits-2)
	var selected string
	if pos != 1 && sample[0] == '0' {
		selected = sample[1 : digits+1]
	} else {
		selected = sample[:digits]
	}
	return selected[:pos] + "." + selected[pos:]
}

// Hexadecimal returns digits upper-case hexadecimal characters.
func (e *Engine) Hexadecimal(digits int) string {
	return e.sample(hexCharset, digits)
}

// ASCIIString returns size random alphanumeric characters.
func (e *Engine) ASCIIString(size int) string {
	return e.sample(alnumCharset, size)
}

// rngReader feeds a seeded source to uuid.NewRandomFromReader.
type rngReader struct {
	rng *mathrand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(256))
	}
	return len(p), nil
}

// UUID returns a random version 4 UUID in format.
func (e *Engine) UUID(format contract.UUIDFormat) (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if e.rng != nil {
		id, err = uuid.NewRandomFromReader(rngReader{rng: e.rng})
	} else {
		id, err = uuid.NewRandom()
	}
	if err != nil {
		return "", fmt.Errorf("could not generate a UUID: %w", err)
	}
	switch format {
	case contract.UUIDSimple:
		return strings.ReplaceAll(id.String(), "-", ""), nil
	case contract.UUIDUpperCaseHyphenated:
		return strings.ToUpper(id.String()), nil
	case contract.UUIDURN:
		return id.URN(), nil
	default:
		return id.String(), nil
	}
}
