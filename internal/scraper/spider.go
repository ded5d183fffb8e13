package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"

	"spotisync/internal/models"
	"spotisync/internal/shared"
)

// ItemSink receives the items a scrape run emits, in emission order.
// Implemented by the graph store; the scrape stage has no other output.
type ItemSink interface {
	SetPlaylistName(ctx context.Context, name string)
	UpsertSong(ctx context.Context, title, artist string, index int)
}

// Report summarizes a completed scrape run.
type Report struct {
	PlaylistName  string
	DefaultArtist string
	IsAlbum       bool
	SongCount     int
	UsedFallback  bool
}

// Spider drives one headless browser session per run.
type Spider struct {
	sink   ItemSink
	logger *log.Logger
	cfg    shared.ScraperConfig
	oembed *resty.Client
}

// New creates a Spider emitting into sink.
func New(sink ItemSink, cfg shared.ScraperConfig, logger *log.Logger) *Spider {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	endpoint := cfg.OEmbedURL
	if endpoint == "" {
		endpoint = "https://open.spotify.com/oembed"
	}

	return &Spider{
		sink:   sink,
		logger: logger,
		cfg:    cfg,
		oembed: newOEmbedClient(endpoint),
	}
}

// Run scrapes the playlist or album page at pageURL and emits the playlist
// name plus every deduplicated song candidate into the sink.
//
// A render timeout is not fatal and the run proceeds with default metadata.
// The only hard failure is being unable to drive the browser at all.
func (s *Spider) Run(ctx context.Context, pageURL string) (*Report, error) {
	isAlbum := strings.Contains(pageURL, "/album/")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1280, 800),
		chromedp.Flag("ignore-certificate-errors", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	s.blockHeavyResources(taskCtx)

	err := chromedp.Run(taskCtx,
		fetch.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Must be registered before navigation so it beats page scripts.
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		chromedp.Navigate(pageURL),
	)
	if err != nil {
		cancelTask()
		return nil, fmt.Errorf("%w: %v", shared.ErrScrapeFailed, err)
	}

	s.waitForRender(taskCtx)

	title, defaultArtist := s.extractPlaylistInfo(taskCtx)
	s.logger.Info("playlist metadata", "name", title, "default_artist", defaultArtist, "album", isAlbum)
	s.sink.SetPlaylistName(ctx, title)

	s.scroll(taskCtx)

	candidates := finalizeCandidates(s.extractRows(taskCtx), defaultArtist, isAlbum)

	report := &Report{
		PlaylistName:  title,
		DefaultArtist: defaultArtist,
		IsAlbum:       isAlbum,
	}

	if len(candidates) == 0 {
		candidates = s.fallbackParse(ctx, taskCtx)
		report.UsedFallback = len(candidates) > 0
	}

	for i, c := range candidates {
		s.logger.Info("song found", "title", c.Title, "artist", c.Artist)
		s.sink.UpsertSong(ctx, c.Title, c.Artist, i+1)
	}
	report.SongCount = len(candidates)

	s.closePage(taskCtx, cancelTask)

	s.logger.Info("scrape complete", "songs", report.SongCount, "fallback", report.UsedFallback)
	return report, nil
}

// blockHeavyResources fails image, font, and media requests before they load.
func (s *Spider) blockHeavyResources(taskCtx context.Context) {
	chromedp.ListenTarget(taskCtx, func(ev any) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}

		go func() {
			c := chromedp.FromContext(taskCtx)
			ectx := cdp.WithExecutor(taskCtx, c.Target)

			switch paused.ResourceType {
			case network.ResourceTypeImage, network.ResourceTypeFont, network.ResourceTypeMedia:
				fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(ectx)
			default:
				fetch.ContinueRequest(paused.RequestID).Do(ectx)
			}
		}()
	})
}

// waitForRender blocks until the page header is visible or the bound expires.
// Timeout is not fatal; downstream extraction falls back to defaults.
func (s *Spider) waitForRender(taskCtx context.Context) {
	timeout := time.Duration(s.cfg.RenderTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 7 * time.Second
	}

	waitCtx, cancel := context.WithTimeout(taskCtx, timeout)
	defer cancel()

	if err := chromedp.Run(waitCtx, chromedp.WaitVisible("h1", chromedp.ByQuery)); err != nil {
		s.logger.Warn("proceeding with defaults", "err", shared.ErrRenderTimeout)
	}
}

func (s *Spider) extractPlaylistInfo(taskCtx context.Context) (title, defaultArtist string) {
	var info pageInfo
	if err := chromedp.Run(taskCtx, chromedp.Evaluate(playlistInfoScript, &info)); err != nil {
		s.logger.Warn("metadata extraction failed", "err", err)
	}
	return finalizeInfo(info)
}

// scroll triggers lazy-loaded rows. Best-effort: errors are ignored.
func (s *Spider) scroll(taskCtx context.Context) {
	count := s.cfg.ScrollCount
	if count <= 0 {
		count = 10
	}
	delay := s.cfg.ScrollDelayMS
	if delay <= 0 {
		delay = 500
	}

	var done bool
	err := chromedp.Run(taskCtx, chromedp.Evaluate(scrollScript(count, delay), &done,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}))
	if err != nil {
		s.logger.Debug("scroll failed", "err", err)
	}
}

func (s *Spider) extractRows(taskCtx context.Context) []pageRow {
	var rows []pageRow
	if err := chromedp.Run(taskCtx, chromedp.Evaluate(extractRowsScript, &rows)); err != nil {
		s.logger.Warn("row extraction failed", "err", err)
	}
	return rows
}

// fallbackParse reads song meta tags from the page head and resolves each via
// the oEmbed lookup. Only used when the primary extractor found nothing; the
// two result sets are never merged.
func (s *Spider) fallbackParse(ctx, taskCtx context.Context) []models.Candidate {
	var urls []string
	if err := chromedp.Run(taskCtx, chromedp.Evaluate(metaSongURLsScript, &urls)); err != nil {
		s.logger.Warn("fallback meta scan failed", "err", err)
		return nil
	}
	if len(urls) == 0 {
		return nil
	}

	s.logger.Info("primary extraction empty, resolving meta tags", "count", len(urls))
	return s.resolveFallback(ctx, urls)
}

// closePage tears down the browser session without letting a hang block run
// completion. After the bound expires the context is cancelled forcefully.
func (s *Spider) closePage(taskCtx context.Context, force context.CancelFunc) {
	timeout := time.Duration(s.cfg.CloseTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	done := make(chan struct{})
	go func() {
		chromedp.Cancel(taskCtx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.logger.Warn("page close timed out, forcing shutdown")
		force()
	}
}
