package coupon

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strings"
)

var ErrInvalidGeneratorConfig = errors.New("code generator needs a positive length and a non-empty charset")

const subCodeLength = 8

type GeneratorConfig struct {
	Length        int
	Chars         string
	Segmented     bool
	SegmentLength int
	Separator     string
}

// Generator produces random coupon codes. Uniqueness is enforced by storage, callers
// retry on conflict.
type Generator struct {
	cfg    GeneratorConfig
	random io.Reader
}

func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if cfg.Length <= 0 || cfg.Chars == "" {
		return nil, ErrInvalidGeneratorConfig
	}
	return &Generator{cfg: cfg, random: rand.Reader}, nil
}

// Code returns prefix followed by a fresh random code, segmented when configured.
func (g *Generator) Code(prefix string) (string, error) {
	raw, err := g.randomString(g.cfg.Length)
	if err != nil {
		return "", err
	}
	if g.cfg.Segmented && g.cfg.SegmentLength > 0 {
		raw = segment(raw, g.cfg.SegmentLength, g.cfg.Separator)
	}
	return strings.TrimSpace(prefix) + raw, nil
}

// SubCode derives a bulk unit code from the parent code.
func (g *Generator) SubCode(parent Code) (string, error) {
	suffix, err := g.randomString(subCodeLength)
	if err != nil {
		return "", err
	}
	return parent.String() + "-" + suffix, nil
}

func (g *Generator) randomString(n int) (string, error) {
	chars := []rune(g.cfg.Chars)
	upper := big.NewInt(int64(len(chars)))

	var b strings.Builder
	b.Grow(n)
	for range n {
		idx, err := rand.Int(g.random, upper)
		if err != nil {
			return "", err
		}
		b.WriteRune(chars[idx.Int64()])
	}
	return b.String(), nil
}

func segment(code string, size int, sep string) string {
	runes := []rune(code)
	parts := make([]string, 0, len(runes)/size+1)
	for i := 0; i < len(runes); i += size {
		end := min(i+size, len(runes))
		parts = append(parts, string(runes[i:end]))
	}
	return strings.Join(parts, sep)
}
