package detector

import "strings"

var (
	botKeywords    = []string{"bot", "crawler", "spider", "scraper", "curl", "wget"}
	mobileKeywords = []string{"mobile", "android", "iphone", "ipod", "blackberry", "windows phone"}
	tabletKeywords = []string{"tablet", "ipad"}
)

// DetectDeviceType classifies a User-Agent into one of bot, mobile,
// tablet, desktop or unknown for click analytics.
func DetectDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	for _, keyword := range botKeywords {
		if strings.Contains(ua, keyword) {
			return "bot"
		}
	}

	for _, keyword := range mobileKeywords {
		if strings.Contains(ua, keyword) {
			return "mobile"
		}
	}

	for _, keyword := range tabletKeywords {
		if strings.Contains(ua, keyword) {
			return "tablet"
		}
	}

	if strings.Contains(ua, "mozilla") || strings.Contains(ua, "windows") || strings.Contains(ua, "macintosh") {
		return "desktop"
	}

	return "unknown"
}
