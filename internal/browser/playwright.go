package browser

import (
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(headless bool) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext creates a browser context with a fixed viewport and UA.
// When storageStatePath points to an existing file, the saved session
// (cookies + local storage) is restored into the context.
func (pm *PlaywrightManager) NewContext(storageStatePath string) (playwright.BrowserContext, error) {
	opts := playwright.BrowserNewContextOptions{
		Viewport:  &playwright.Size{Width: 1366, Height: 900},
		UserAgent: playwright.String(userAgent),
	}

	if storageStatePath != "" {
		if _, err := os.Stat(storageStatePath); err == nil {
			opts.StorageStatePath = playwright.String(storageStatePath)
		}
	}

	return pm.browser.NewContext(opts)
}

func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			return err
		}
	}
	return pm.pw.Stop()
}
