// Package discover walks a site and yields URL entries for sitemap
// generation. It collects the canonical URL of every page reachable
// within the configured depth, along with hreflang alternate link
// annotations found in the page head.
package discover

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/logger"
	"github.com/jonesrussell/gositemap/internal/sitemap"
	"github.com/jonesrussell/gositemap/internal/source"
)

// defaultUserAgent identifies the walker to crawled sites.
const defaultUserAgent = "gositemap/1.0 (+https://github.com/jonesrussell/gositemap)"

// Provider walks one configured site and yields its pages as entries.
type Provider struct {
	cfg config.DiscoverConfig
	log logger.Interface
}

// NewProvider creates a discovery provider for one site.
func NewProvider(cfg config.DiscoverConfig, log logger.Interface) *Provider {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Provider{cfg: cfg, log: log.WithComponent("discover")}
}

// Name implements source.Provider.
func (p *Provider) Name() string {
	return "discover:" + p.cfg.Name
}

// Entries implements source.Provider. The walk is synchronous; entries
// come back in visit order, deduplicated by canonical URL.
func (p *Provider) Entries(ctx context.Context) ([]source.Entry, error) {
	start, err := url.Parse(p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse start url %q: %w", p.cfg.URL, err)
	}

	collector, err := p.newCollector(start)
	if err != nil {
		return nil, err
	}

	var entries []source.Entry
	seen := make(map[string]bool)

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		entry := pageEntry(e)
		if seen[entry.Loc] {
			return
		}
		seen[entry.Loc] = true
		entries = append(entries, entry)
	})

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		// Visit errors (depth, domain, revisit) are expected here.
		_ = e.Request.Visit(link)
	})

	collector.OnError(func(r *colly.Response, visitErr error) {
		p.log.Warn("Page fetch failed", "url", r.Request.URL.String(), "error", visitErr)
	})

	if visitErr := collector.Visit(p.cfg.URL); visitErr != nil {
		return nil, fmt.Errorf("visit %q: %w", p.cfg.URL, visitErr)
	}
	collector.Wait()

	p.log.Info("Site walk complete", "site", p.cfg.Name, "pages", len(entries))

	return entries, nil
}

// newCollector builds the collector with depth, domain and rate limits
// from the provider config.
func (p *Provider) newCollector(start *url.URL) (*colly.Collector, error) {
	domains := p.cfg.AllowedDomains
	if len(domains) == 0 {
		// AllowedDomains matches hostnames, not host:port pairs.
		domains = []string{start.Hostname()}
	}

	collector := colly.NewCollector(
		colly.MaxDepth(p.cfg.MaxDepth),
		colly.AllowedDomains(domains...),
		colly.UserAgent(defaultUserAgent),
	)

	if p.cfg.RateLimit > 0 {
		if err := collector.Limit(&colly.LimitRule{
			DomainGlob: "*",
			Delay:      p.cfg.RateLimit,
		}); err != nil {
			return nil, fmt.Errorf("failed to set rate limit: %w", err)
		}
	}

	return collector, nil
}

// pageEntry builds the entry for one visited page. The canonical link is
// preferred over the request URL; hreflang alternates from the page head
// carry over as alternate links; the Last-Modified response header, when
// parseable, becomes the entry's lastmod.
func pageEntry(e *colly.HTMLElement) source.Entry {
	loc := e.Request.URL.String()
	if canonical := canonicalURL(e.DOM, e); canonical != "" {
		loc = canonical
	}

	entry := source.Entry{Loc: loc}
	entry.Options.Alternates = alternateLinks(e.DOM, e)

	if lastMod := e.Response.Headers.Get("Last-Modified"); lastMod != "" {
		if t, err := time.Parse(http.TimeFormat, lastMod); err == nil {
			entry.Options.LastMod = t.UTC().Format("2006-01-02")
		}
	}

	return entry
}

// canonicalURL returns the page's canonical link target, absolutized, or
// an empty string when the page declares none.
func canonicalURL(dom *goquery.Selection, e *colly.HTMLElement) string {
	href, ok := dom.Find(`link[rel="canonical"]`).Attr("href")
	if !ok {
		return ""
	}
	return e.Request.AbsoluteURL(href)
}

// alternateLinks collects hreflang alternate links from the page head.
func alternateLinks(dom *goquery.Selection, e *colly.HTMLElement) []sitemap.Alternate {
	var alternates []sitemap.Alternate

	dom.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		hreflang, _ := sel.Attr("hreflang")

		alternates = append(alternates, sitemap.Alternate{
			Href:  e.Request.AbsoluteURL(href),
			Attrs: []sitemap.Attr{{Name: "hreflang", Value: hreflang}},
		})
	})

	return alternates
}
