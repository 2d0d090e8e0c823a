package linkedin

import (
	"net/url"
	"strings"

	"go-posthunt-automation/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

const fieldTimeoutMs = 2000

// Per-field selector chains. LinkedIn's markup shifts between renders, so
// each field tries an ordered list of selectors and the first non-empty
// value wins. A failed strategy never aborts the other fields.
var (
	textSelectors       = []string{"div[dir='ltr']", "span[dir='ltr']", "p"}
	posterLinkSelectors = []string{"a[href*='/in/']", "a[href*='linkedin.com/in/']"}
	posterNameSelectors = []string{"a[href*='/in/']", "span.feed-shared-actor__name"}
	postURLSelectors    = []string{"a[href*='/posts/']", "a[href*='/activity/']", "a[href*='/feed/update/urn:']"}
	timestampSelectors  = []string{"time", "span.update-components-actor__sub-description"}
)

// extractPost pulls the raw fields out of one rendered post container.
// Partial results are expected, never an error.
func extractPost(item playwright.Locator) scraper.Post {
	text := firstText(item, textSelectors...)
	if text == "" {
		//last resort: the container's own inner text
		text = safeText(item)
	}

	profileURL := firstHref(item, posterLinkSelectors...)

	return scraper.Post{
		Text:             text,
		PosterName:       firstText(item, posterNameSelectors...),
		PosterProfileURL: profileURL,
		PosterID:         ExtractProfileID(profileURL),
		PostURL:          firstHref(item, postURLSelectors...),
		TimestampText:    firstText(item, timestampSelectors...),
	}
}

func firstText(item playwright.Locator, selectors ...string) string {
	for _, sel := range selectors {
		loc := item.Locator(sel).First()
		if n, err := loc.Count(); err != nil || n == 0 {
			continue
		}
		if txt := safeText(loc); txt != "" {
			return txt
		}
	}
	return ""
}

func firstHref(item playwright.Locator, selectors ...string) string {
	for _, sel := range selectors {
		loc := item.Locator(sel).First()
		if n, err := loc.Count(); err != nil || n == 0 {
			continue
		}
		href, err := loc.GetAttribute("href", playwright.LocatorGetAttributeOptions{
			Timeout: playwright.Float(fieldTimeoutMs),
		})
		if err != nil || href == "" {
			continue
		}
		return EnsureFullURL(href)
	}
	return ""
}

func safeText(loc playwright.Locator) string {
	txt, err := loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(fieldTimeoutMs),
	})
	if err != nil {
		return ""
	}
	return NormalizeWhitespace(txt)
}

// NormalizeWhitespace collapses whitespace runs to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EnsureFullURL resolves root-relative hrefs against the LinkedIn origin.
// Absolute or unrelated strings (mailto:, fragments) pass through unchanged.
func EnsureFullURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return BaseURL + href
	}
	return href
}

// ExtractProfileID derives the vanity id from a profile URL. Typical paths
// are /in/some-id/ for people and /company/some-id/ for organizations.
func ExtractProfileID(profileURL string) string {
	if profileURL == "" {
		return ""
	}
	u, err := url.Parse(profileURL)
	if err != nil {
		return ""
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	if (segments[0] == "in" || segments[0] == "company") && len(segments) >= 2 {
		return segments[1]
	}
	return segments[0]
}
