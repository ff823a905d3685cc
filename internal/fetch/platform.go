package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type board struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"},
		noise:    []string{".apply-section", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
		noise:    []string{"[data-automation-id='applyButton']"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']"},
	},
}

// genericContent is tried for unknown hosts.
var genericContent = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
}

// commonNoise applies to every board.
var commonNoise = []string{
	"form",
	".application-form",
	".eeo-statement",
	".voluntary-disclosure",
	".social-share",
	".cookie-consent",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(rawURL string) Platform {
	b := lookup(rawURL)
	if b == nil {
		return PlatformUnknown
	}
	return b.platform
}

func lookup(rawURL string) *board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range boards {
		for _, h := range boards[i].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return &boards[i]
			}
		}
	}
	return nil
}

// ContentSelectors returns main-content selectors for platform, most specific first.
func ContentSelectors(platform Platform) []string {
	for _, b := range boards {
		if b.platform == platform {
			return append(append([]string{}, b.content...), genericContent...)
		}
	}
	return append([]string{}, genericContent...)
}

// NoiseSelectors returns elements to strip before extracting text on platform.
func NoiseSelectors(platform Platform) []string {
	out := append([]string{}, commonNoise...)
	for _, b := range boards {
		if b.platform == platform {
			out = append(out, b.noise...)
		}
	}
	return out
}
