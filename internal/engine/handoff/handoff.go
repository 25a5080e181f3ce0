// Package handoff renders QR codes that let a user continue a verification
// session on a phone.
package handoff

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	MinSize     = 128
	MaxSize     = 2048
	DefaultSize = 256
)

var (
	ErrMissingURL     = errors.New("url is required")
	ErrInvalidURL     = errors.New("url must be an absolute http:// or https:// URL")
	ErrHostNotAllowed = errors.New("url host is not allowed")
	ErrInvalidSize    = errors.New("invalid size: must be between 128 and 2048")
)

type Generator struct {
	allowedHosts map[string]struct{}
	defaultSize  int
}

// NewGenerator restricts targets to allowedHosts when the list is non-empty.
func NewGenerator(allowedHosts []string, defaultSize int) *Generator {
	g := &Generator{defaultSize: defaultSize}
	if g.defaultSize == 0 {
		g.defaultSize = DefaultSize
	}
	for _, h := range allowedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if g.allowedHosts == nil {
			g.allowedHosts = make(map[string]struct{})
		}
		g.allowedHosts[h] = struct{}{}
	}
	return g
}

func (g *Generator) Validate(target string) error {
	if target == "" {
		return ErrMissingURL
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}

	if g.allowedHosts != nil {
		if _, ok := g.allowedHosts[strings.ToLower(u.Hostname())]; !ok {
			return ErrHostNotAllowed
		}
	}
	return nil
}

// PNG returns the QR image for target. A zero size selects the default.
func (g *Generator) PNG(target string, size int) ([]byte, error) {
	if size == 0 {
		size = g.defaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}
	if err := g.Validate(target); err != nil {
		return nil, err
	}

	qr, err := qrcode.New(target, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.PNG(size)
}
