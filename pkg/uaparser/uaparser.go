// Package uaparser reduces a User-Agent header to the coarse browser, OS and
// device labels stored with each visit.
package uaparser

import (
	"strings"

	"github.com/mssola/useragent"
)

const Unknown = "Unknown"

// Device types
const (
	Desktop = "Desktop"
	Mobile  = "Mobile"
	Tablet  = "Tablet"
)

type Info struct {
	Browser    string
	OS         string
	DeviceType string
	Bot        bool
}

func Parse(raw string) Info {
	ua := useragent.New(raw)
	lower := strings.ToLower(raw)

	info := Info{
		Browser:    Unknown,
		OS:         normalizeOS(strings.ToLower(ua.OS()) + " " + lower),
		DeviceType: Desktop,
		Bot:        ua.Bot(),
	}
	if name, _ := ua.Browser(); name != "" {
		info.Browser = name
	}

	switch {
	case strings.Contains(lower, "ipad"), strings.Contains(lower, "tablet"),
		strings.Contains(lower, "android") && !ua.Mobile():
		info.DeviceType = Tablet
	case ua.Mobile():
		info.DeviceType = Mobile
	}
	return info
}

// order matters: iOS user agents also say "like Mac OS X"
func normalizeOS(s string) string {
	switch {
	case strings.Contains(s, "iphone"), strings.Contains(s, "ipad"), strings.Contains(s, "ipod"):
		return "iOS"
	case strings.Contains(s, "android"):
		return "Android"
	case strings.Contains(s, "windows"):
		return "Windows"
	case strings.Contains(s, "cros"):
		return "ChromeOS"
	case strings.Contains(s, "mac os"), strings.Contains(s, "macintosh"):
		return "macOS"
	case strings.Contains(s, "linux"):
		return "Linux"
	}
	return Unknown
}
