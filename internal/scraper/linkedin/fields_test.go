package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureFullURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"root-relative profile", "/in/jdoe", "https://www.linkedin.com/in/jdoe"},
		{"absolute https", "https://x.com/a", "https://x.com/a"},
		{"absolute http", "http://x.com/a", "http://x.com/a"},
		{"mailto unchanged", "mailto:a@b.com", "mailto:a@b.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnsureFullURL(tt.href))
		})
	}
}

func TestExtractProfileID(t *testing.T) {
	tests := []struct {
		name       string
		profileURL string
		want       string
	}{
		{"person profile", "https://www.linkedin.com/in/jdoe/", "jdoe"},
		{"company profile", "https://www.linkedin.com/company/acme-corp/about/", "acme-corp"},
		{"bare single segment", "https://www.linkedin.com/jdoe", "jdoe"},
		{"in with no second segment", "https://www.linkedin.com/in/", "in"},
		{"mailto has no path", "mailto:a@b.com", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProfileID(tt.profileURL))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "Hiring Data Analyst now", NormalizeWhitespace("  Hiring \n\tData   Analyst\nnow "))
	assert.Equal(t, "", NormalizeWhitespace(" \n\t "))
}
