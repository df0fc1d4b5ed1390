// Package browser plays the live puzzle page through Chrome.
//
// The Driver is the guess sink and feedback source for a session: it types
// guesses on the page keyboard and reads evaluated tiles back from the DOM.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// DefaultURL is the live puzzle page.
const DefaultURL = "https://www.nytimes.com/games/wordle/index.html"

// ErrNoFeedback is returned when the board holds no row for the last guess.
var ErrNoFeedback = errors.New("browser: no feedback on the board")

const (
	rowSelector   = `div[class*="Row-module_row"]`
	tileSelector  = `div[class*="Tile-module_tile"]`
	closeSelector = `button[aria-label="Close"]`

	firstShot = "wordle1.png"
	finalShot = "wordle2.png"
)

// Config controls how the page is opened and driven.
type Config struct {
	URL               string
	Headless          bool
	ControlURL        string // attach to a running Chrome instead of launching one
	ViewportWidth     int
	ViewportHeight    int
	TypeDelay         time.Duration // pause before typing a guess
	SettleDelay       time.Duration // pause after Enter while tiles flip
	NavigationTimeout time.Duration
	ScreenshotDir     string // empty disables screenshots
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = 400
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = 600
	}
	if c.TypeDelay == 0 {
		c.TypeDelay = time.Second
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = 2 * time.Second
	}
	if c.NavigationTimeout == 0 {
		c.NavigationTimeout = 30 * time.Second
	}
	return c
}

// Driver owns one browser and one puzzle page.
type Driver struct {
	cfg       Config
	launch    *launcher.Launcher // nil when attached via ControlURL
	browser   *rod.Browser
	page      *rod.Page
	submitted int
}

// Open starts (or attaches to) Chrome, loads the puzzle and dismisses the
// help dialog.
func Open(ctx context.Context, cfg Config) (*Driver, error) {
	cfg = cfg.withDefaults()
	d := &Driver{cfg: cfg}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		d.launch = launcher.New().Headless(cfg.Headless)
		u, err := d.launch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	d.browser = rod.New().ControlURL(controlURL).Context(ctx)
	if err := d.browser.Connect(); err != nil {
		d.cleanup()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := d.browser.Page(proto.TargetCreateTarget{URL: cfg.URL})
	if err != nil {
		d.cleanup()
		return nil, fmt.Errorf("create page: %w", err)
	}
	d.page = page

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.ViewportWidth,
		Height:            cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		log.Warn().Err(err).Msg("set viewport")
	}
	if err := page.Context(ctx).Timeout(cfg.NavigationTimeout).WaitLoad(); err != nil {
		d.cleanup()
		return nil, fmt.Errorf("load %s: %w", cfg.URL, err)
	}
	log.Info().Str("url", cfg.URL).Msg("puzzle page loaded")

	d.screenshot(ctx, firstShot)
	if err := d.dismissDialog(ctx); err != nil {
		log.Warn().Err(err).Msg("close help dialog")
	}
	return d, nil
}

func (d *Driver) dismissDialog(ctx context.Context) error {
	ok, el, err := d.page.Context(ctx).Has(closeSelector)
	if err != nil || !ok {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// Submit types word and presses Enter.
func (d *Driver) Submit(ctx context.Context, word string) error {
	if err := sleep(ctx, d.cfg.TypeDelay); err != nil {
		return err
	}
	keys := make([]input.Key, 0, len(word)+1)
	for _, r := range word {
		keys = append(keys, input.Key(r))
	}
	keys = append(keys, input.Enter)
	if err := d.page.Context(ctx).Keyboard.Type(keys...); err != nil {
		return fmt.Errorf("type %q: %w", word, err)
	}
	d.submitted++
	return sleep(ctx, d.cfg.SettleDelay)
}

// Feedback reads the board and returns the row for the last guess.
func (d *Driver) Feedback(ctx context.Context) (feedback.GuessRow, error) {
	board, err := d.scrape(ctx)
	if err != nil {
		return feedback.GuessRow{}, err
	}
	rows, err := RowsFromTiles(board)
	if err != nil {
		return feedback.GuessRow{}, err
	}
	if len(rows) == 0 || len(rows) < d.submitted {
		return feedback.GuessRow{}, fmt.Errorf("%w: %d rows after %d guesses", ErrNoFeedback, len(rows), d.submitted)
	}
	return rows[len(rows)-1], nil
}

func (d *Driver) scrape(ctx context.Context) ([][]Tile, error) {
	res, err := d.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS: `(rowSel, tileSel) => Array.from(document.querySelectorAll(rowSel)).map(
			(row) => Array.from(row.querySelectorAll(tileSel)).map(
				(t) => ({ text: t.textContent || "", state: t.dataset.state || "" })))`,
		JSArgs:       []interface{}{rowSelector, tileSelector},
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	if res == nil {
		return nil, ErrNoFeedback
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var board [][]Tile
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	return board, nil
}

// Close takes the final screenshot and shuts the browser down.
func (d *Driver) Close(ctx context.Context) error {
	d.screenshot(ctx, finalShot)
	err := d.browser.Close()
	if d.launch != nil {
		d.launch.Kill()
	}
	return err
}

func (d *Driver) cleanup() {
	if d.browser != nil {
		_ = d.browser.Close()
	}
	if d.launch != nil {
		d.launch.Kill()
	}
}

// screenshot is best effort; failures are logged.
func (d *Driver) screenshot(ctx context.Context, name string) {
	if d.cfg.ScreenshotDir == "" {
		return
	}
	img, err := d.page.Context(ctx).Screenshot(true, nil)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("screenshot")
		return
	}
	path := filepath.Join(d.cfg.ScreenshotDir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("write screenshot")
		return
	}
	log.Debug().Str("file", path).Msg("screenshot saved")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
