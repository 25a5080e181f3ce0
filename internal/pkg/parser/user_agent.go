package parser

import "strings"

// Client is the coarse device description recorded with each verification.
type Client struct {
	OS      string
	Browser string
	Mobile  bool
}

// ParseUserAgent checks mobile platforms before desktop ones because iOS and
// Android agents also carry "Mac OS" and "Linux".
func ParseUserAgent(ua string) Client {
	uaLower := strings.ToLower(ua)
	var c Client

	switch {
	case strings.Contains(uaLower, "iphone") || strings.Contains(uaLower, "ipad"):
		c.OS, c.Mobile = "iOS", true
	case strings.Contains(uaLower, "android"):
		c.OS, c.Mobile = "Android", true
	case strings.Contains(uaLower, "windows"):
		c.OS = "Windows"
	case strings.Contains(uaLower, "mac os"):
		c.OS = "macOS"
	case strings.Contains(uaLower, "linux"):
		c.OS = "Linux"
	default:
		c.OS = "Unknown"
	}

	switch {
	case strings.Contains(uaLower, "edg"):
		c.Browser = "Edge"
	case strings.Contains(uaLower, "firefox") || strings.Contains(uaLower, "fxios"):
		c.Browser = "Firefox"
	case strings.Contains(uaLower, "chrome") || strings.Contains(uaLower, "crios"):
		c.Browser = "Chrome"
	case strings.Contains(uaLower, "safari"):
		c.Browser = "Safari"
	default:
		c.Browser = "Unknown"
	}

	return c
}
