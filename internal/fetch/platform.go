package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board recognised by host name
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
}

// DetectPlatform identifies the job board behind urlStr
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the selectors that hold the posting body on p,
// ending with the generic job page selectors
func (p Platform) ContentSelectors() []string {
	var specific []string
	switch p {
	case PlatformGreenhouse:
		specific = []string{".job__description.body", ".job__description", ".job-description__content", ".job-post-container"}
	case PlatformLever:
		specific = []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"}
	case PlatformWorkday:
		specific = []string{"[data-automation-id='jobDescription']", ".gwt-HTML"}
	case PlatformAshby:
		specific = []string{".ashby-job-posting-right-pane", "._descriptionText_4fqrp_201"}
	}
	return append(specific, JobPostingSelectors()...)
}

// NoiseSelectors returns elements to drop on p: application forms, EEO
// notices, share buttons and consent banners
func (p Platform) NoiseSelectors() []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".application--container",
		".apply-button-container",
		"[data-testid='application-form']",
		".voluntary-disclosure",
		".eeo-statement",
		".eeo-section",
		"[data-testid='eeo']",
		".legal-disclosure",
		".self-identification",
		".social-share",
		".share-buttons",
		".social-links",
		".cookie-consent",
		".gdpr-notice",
	}

	switch p {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply")
	case PlatformLever:
		return append(common, ".apply-section", ".lever-application-form", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".application-section")
	default:
		return common
	}
}
