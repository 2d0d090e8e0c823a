// Standalone login flow: authenticate once (credentials or manual) and save
// the storage state so scraper runs can reuse the session.

package main

import (
	"log"

	"go-posthunt-automation/internal/browser"
	"go-posthunt-automation/internal/config"
)

func main() {
	cfg := config.Load()

	pwManager, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//fresh context: no stored session, we are creating one
	browserCtx, err := pwManager.NewContext("")
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}

	session := browser.NewSessionManager(cfg.StorageStatePath)

	success := false
	if cfg.Email != "" && cfg.Password != "" {
		success = session.LoginWithCredentials(page, cfg.Email, cfg.Password)
	}

	if !success {
		if cfg.Headless {
			log.Fatalf("❌ Headless login failed and manual login is not possible headless. Set headless: false in configs/config.yaml.")
		}
		log.Println("🔑 Please complete login in the opened browser window. Waiting up to 2 minutes...")
		success = session.WaitForManualLogin(page)
	}

	if !success {
		browser.CaptureScreenshot(page, "login-failed")
		log.Fatalf("❌ Login not completed.")
	}

	if err := session.SaveStorageState(browserCtx); err != nil {
		log.Fatalf("❌ Failed to save session: %v", err)
	}
	log.Printf("✅ Saved login session to %s", cfg.StorageStatePath)
}
