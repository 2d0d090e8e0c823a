package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Pacing bounds the randomized waits inserted between page interactions
// and between batches of LLM calls.
type Pacing struct {
	MinMillis int
	MaxMillis int
}

// Wait sleeps for a random duration inside the pacing bounds.
func (p Pacing) Wait() {
	RandomDelay(p.MinMillis, p.MaxMillis)
}

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(page playwright.Page) {
	viewportSize := page.ViewportSize()
	if viewportSize == nil {
		return
	}

	for i := 0; i < 3; i++ {
		x := rand.Intn(viewportSize.Width)
		y := rand.Intn(viewportSize.Height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return
		}
		RandomDelay(100, 300)
	}
}
