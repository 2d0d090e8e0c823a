package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-posthunt-automation/internal/browser"
	"go-posthunt-automation/internal/config"
	"go-posthunt-automation/internal/extract"
	"go-posthunt-automation/internal/report"
	"go-posthunt-automation/internal/scraper/linkedin"
	"go-posthunt-automation/internal/store"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Query: %q, max posts: %d", cfg.Query, cfg.MaxPosts)

	//init optional telegram reporter (nil when unconfigured)
	reporter, err := report.New(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ Telegram reporter disabled: %v", err)
		reporter = nil
	}

	//setup context with timeout = 15 mins
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	log.Println("🚀 Starting LinkedIn post hunt...")

	//init playwright manager
	pwManager, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//create browser context, restoring the saved session if present
	browserCtx, err := pwManager.NewContext(cfg.StorageStatePath)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//authentication is the one fatal precondition
	session := browser.NewSessionManager(cfg.StorageStatePath)
	if !session.EnsureLoggedIn(page, cfg.Email, cfg.Password, !cfg.Headless) {
		browser.CaptureScreenshot(page, "login-failed")
		log.Fatalf("❌ Not logged in. Set LINKEDIN_EMAIL/LINKEDIN_PASSWORD or run cmd/login to save a session first.")
	}
	log.Println("✅ Login confirmed.")

	//refresh the saved session for the next run
	_ = session.SaveStorageState(browserCtx)

	//collect candidate posts
	collector := linkedin.NewPostCollector(cfg)
	posts, err := collector.Collect(ctx, page, cfg.Query, cfg.MaxPosts)
	if err != nil {
		log.Printf("⚠️ Collection ended early: %v", err)
	}
	log.Printf("📦 Collected %d raw posts; sending to %s for filtering/extraction...", len(posts), cfg.OllamaModel)

	//classify and extract each post
	client := extract.NewClient(cfg.OllamaURL, cfg.OllamaModel, time.Duration(cfg.OllamaTimeoutSec)*time.Second)
	extractor := extract.NewExtractor(client, browser.Pacing{
		MinMillis: cfg.LLMDelayMinMs,
		MaxMillis: cfg.LLMDelayMaxMs,
	})

	var kept []store.Record
	for _, post := range posts {
		if strings.TrimSpace(post.Text) == "" {
			continue
		}
		ext := extractor.ClassifyAndExtract(ctx, post.Text)
		if !ext.VerdictRelevant {
			continue
		}
		kept = append(kept, store.BuildRecord(post, ext))
	}

	if len(kept) == 0 {
		log.Println("ℹ️ No relevant posts found based on the criteria.")
		return
	}

	//merge into the persisted dataset; a write failure here is terminal
	added, err := store.MergeAndSave(cfg.OutputPath, kept)
	if err != nil {
		log.Fatalf("❌ Failed to write dataset: %v", err)
	}
	log.Printf("✅ Wrote %d new records (%d relevant this run) to %s", added, len(kept), cfg.OutputPath)

	//report results; failures here never affect exit status
	if reporter != nil {
		for _, rec := range kept {
			if err := reporter.SendRecord(rec); err != nil {
				log.Printf("⚠️ Failed to send record to Telegram: %v", err)
			}
			//1 second delay to avoid 429
			time.Sleep(1 * time.Second)
		}
		statusMsg := fmt.Sprintf("Found %d relevant posts, %d new rows saved.", len(kept), added)
		if err := reporter.SendStatus(statusMsg); err != nil {
			log.Printf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
}
