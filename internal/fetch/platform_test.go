package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/abc", PlatformAshby},
		{"https://example.com/careers/123", PlatformUnknown},
		{"https://notgreenhouse.io.evil.com/x", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors_EndWithGeneric(t *testing.T) {
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformAshby, PlatformUnknown} {
		selectors := p.ContentSelectors()
		assert.Equal(t, "#content", selectors[len(selectors)-1], p)
	}
	assert.Equal(t, ".job__description.body", PlatformGreenhouse.ContentSelectors()[0])
	assert.Equal(t, JobPostingSelectors(), PlatformUnknown.ContentSelectors())
}

func TestNoiseSelectors(t *testing.T) {
	common := PlatformUnknown.NoiseSelectors()
	assert.Contains(t, common, "form")
	assert.Contains(t, PlatformGreenhouse.NoiseSelectors(), "#usa_self_id_section")
	assert.Contains(t, PlatformLever.NoiseSelectors(), ".posting-apply")
	assert.Len(t, PlatformWorkday.NoiseSelectors(), len(common)+2)
}
