package order

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"time"
)

var numberEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NumberGenerator produces human-facing order numbers like ORD-20260114-K3J9QW
type NumberGenerator struct {
	Now    func() time.Time
	Random io.Reader
}

// NewNumberGenerator uses the wall clock and crypto/rand
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{Now: time.Now, Random: rand.Reader}
}

// Next returns a fresh order number
func (g *NumberGenerator) Next() (string, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(g.Random, buf); err != nil {
		return "", fmt.Errorf("order number: %w", err)
	}
	return "ORD-" + g.Now().Format("20060102") + "-" + numberEncoding.EncodeToString(buf)[:6], nil
}
