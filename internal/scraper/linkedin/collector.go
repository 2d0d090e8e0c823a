package linkedin

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"go-posthunt-automation/internal/browser"
	"go-posthunt-automation/internal/config"
	"go-posthunt-automation/internal/dedup"
	"go-posthunt-automation/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

const BaseURL = "https://www.linkedin.com"

const scrollWheelDelta = 2000

type PostCollector struct {
	cfg    *config.Config
	pacing browser.Pacing
}

func NewPostCollector(cfg *config.Config) *PostCollector {
	return &PostCollector{
		cfg: cfg,
		pacing: browser.Pacing{
			MinMillis: cfg.ScrollDelayMinMs,
			MaxMillis: cfg.ScrollDelayMaxMs,
		},
	}
}

func (c *PostCollector) Name() string {
	return "LinkedIn Posts"
}

// Collect drives the content search surface for query and returns up to
// maxPosts deduplicated posts in first-seen order. The loop ends on quota
// or after StagnationLimit scroll advances without page growth - the
// surface gives no explicit end-of-results signal.
func (c *PostCollector) Collect(ctx context.Context, page playwright.Page, query string, maxPosts int) ([]scraper.Post, error) {
	searchURL := fmt.Sprintf("%s/search/results/content/?keywords=%s&origin=GLOBAL_SEARCH_HEADER", BaseURL, url.QueryEscape(query))
	log.Printf("🔍 Searching posts: %q", query)

	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(45000),
	}); err != nil {
		return nil, fmt.Errorf("failed to load content search: %w", err)
	}
	browser.RandomDelay(1200, 2200)
	browser.MouseJiggle(page)

	//best-effort: narrow results to the Posts tab
	c.switchToPostsTab(page)

	seen := dedup.NewSeen()
	var posts []scraper.Post
	lastHeight := 0
	stagnant := 0

	for len(posts) < maxPosts && stagnant < c.cfg.StagnationLimit {
		if ctx.Err() != nil {
			return posts, ctx.Err()
		}

		//tolerate the timeout: late renders are caught by the growth check
		_, _ = page.WaitForSelector("article", playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(8000),
		})

		items, err := page.Locator("article").All()
		if err != nil {
			items = nil
		}
		for _, item := range items {
			if len(posts) >= maxPosts {
				break
			}
			post := extractPost(item)
			if !seen.MarkSeen(dedup.Fingerprint(post.FieldTuple())) {
				//scroll advances re-surface overlapping items
				continue
			}
			posts = append(posts, post)
		}

		if err := page.Mouse().Wheel(0, scrollWheelDelta); err != nil {
			log.Printf("    ⚠️ Scroll failed: %v", err)
		}
		c.pacing.Wait()

		if height, err := scrollHeight(page); err == nil {
			if height == lastHeight {
				stagnant++
			} else {
				stagnant = 0
				lastHeight = height
			}
		}
	}

	if stagnant >= c.cfg.StagnationLimit {
		log.Printf("    ⏹ No new content after %d scrolls, stopping.", stagnant)
	}
	return posts, nil
}

func (c *PostCollector) switchToPostsTab(page playwright.Page) {
	tab := page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: "Posts",
	})
	if n, err := tab.Count(); err != nil || n == 0 {
		return
	}
	if err := tab.First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		log.Printf("    ⚠️ Could not switch to Posts tab: %v", err)
		return
	}
	browser.RandomDelay(1000, 1800)
}

// scrollHeight reads the page growth signal used for stagnation detection.
func scrollHeight(page playwright.Page) (int, error) {
	v, err := page.Evaluate("() => document.body.scrollHeight")
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("unexpected scrollHeight type %T", v)
}
