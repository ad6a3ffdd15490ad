// Package collector drives full collection runs: index pages are harvested
// for detail links, detail pages are fetched and extracted, and the results
// are deduplicated across pages. A failed page is logged and skipped; one bad
// page never aborts a run.
package collector

import (
	"context"
	"sort"
	"time"

	"github.com/playamaps/brc-directory/internal/config"
	"github.com/playamaps/brc-directory/internal/extract"
	"github.com/playamaps/brc-directory/internal/harvest"
	"github.com/playamaps/brc-directory/internal/htmldoc"
	"github.com/playamaps/brc-directory/internal/logger"
	"github.com/playamaps/brc-directory/internal/record"
	"github.com/playamaps/brc-directory/internal/storage"
)

// PageFetcher retrieves one page's decoded HTML.
type PageFetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Collector runs collection for all three entity types.
type Collector struct {
	fetcher PageFetcher
	cfg     *config.Config
}

// New creates a Collector.
func New(fetcher PageFetcher, cfg *config.Config) *Collector {
	return &Collector{fetcher: fetcher, cfg: cfg}
}

// CollectCamps harvests the camp directory. maxPages limits the index pages
// scanned; zero means no limit.
func (c *Collector) CollectCamps(ctx context.Context, maxPages int) ([]*record.Camp, error) {
	links, err := c.collectLinks(ctx, c.cfg.Camps, maxPages)
	if err != nil {
		return nil, err
	}

	camps := make([]*record.Camp, 0, len(links))
	for i, link := range links {
		doc, ok := c.fetchDetail(ctx, link, i+1, len(links))
		if !ok {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		camp := extract.Camp(doc)
		if camp.Latitude != nil {
			logger.IncrCounter("camps.coordinates_resolved")
		}
		camps = append(camps, camp)
		logger.IncrCounter("camps.extracted")
	}

	logger.Info("Camp collection complete", logger.Fields{"camps": len(camps)})
	return camps, nil
}

// CollectArt harvests the artwork directory.
func (c *Collector) CollectArt(ctx context.Context, maxPages int) ([]*record.Art, error) {
	links, err := c.collectLinks(ctx, c.cfg.Art, maxPages)
	if err != nil {
		return nil, err
	}

	art := make([]*record.Art, 0, len(links))
	for i, link := range links {
		doc, ok := c.fetchDetail(ctx, link, i+1, len(links))
		if !ok {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		piece := extract.Art(doc)
		if piece.Latitude != nil {
			logger.IncrCounter("art.coordinates_resolved")
		}
		art = append(art, piece)
		logger.IncrCounter("art.extracted")
	}

	logger.Info("Artwork collection complete", logger.Fields{"artworks": len(art)})
	return art, nil
}

// CollectEvents harvests the playa events site. Event IDs are gathered from
// all index pages, sorted for reproducible processing order, then each detail
// page is fetched. When campsPath names a previously collected camps file,
// events held at a known camp inherit its normalized location and
// coordinates.
func (c *Collector) CollectEvents(ctx context.Context, maxEvents int, campsPath string) ([]*record.Event, error) {
	links, err := c.collectLinks(ctx, c.cfg.Events, 0)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		id := harvest.EntityID(link)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	logger.Info("Collected event IDs", logger.Fields{"events": len(ids)})

	camps := c.loadCampIndex(campsPath)

	events := make([]*record.Event, 0, len(ids))
	for i, id := range ids {
		if maxEvents > 0 && len(events) >= maxEvents {
			logger.Info("Reached max events limit", logger.Fields{"max_events": maxEvents})
			break
		}
		url := c.cfg.Events.BaseURL + c.cfg.Events.PathPrefix + "/" + id + "/"
		doc, ok := c.fetchDetail(ctx, url, i+1, len(ids))
		if !ok {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		evt := extract.Event(doc, id)
		enrichEventLocation(evt, camps)
		events = append(events, evt)
		logger.IncrCounter("events.extracted")
	}

	logger.Info("Event collection complete", logger.Fields{"events": len(events)})
	return events, nil
}

// collectLinks walks a source's index pages and returns the unique detail
// links in first-seen order.
func (c *Collector) collectLinks(ctx context.Context, src config.Source, maxPages int) ([]string, error) {
	pattern, err := harvest.NewPathPattern(src.PathPrefix)
	if err != nil {
		return nil, err
	}

	totalPages := src.EndPage - src.StartPage + 1
	var links []string
	for i, page := 1, src.StartPage; page <= src.EndPage; i, page = i+1, page+1 {
		if maxPages > 0 && i > maxPages {
			logger.Info("Reached max pages limit", logger.Fields{"max_pages": maxPages})
			break
		}

		url := src.IndexURL(page)
		start := time.Now()
		html, err := c.fetcher.Get(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Error("Failed to fetch index page", logger.Fields{"url": url}, err)
			logger.IncrCounter("index.fetch_errors")
			continue
		}
		logger.RecordTiming("fetch.index", time.Since(start))

		doc, err := htmldoc.Parse(html)
		if err != nil {
			logger.Error("Failed to parse index page", logger.Fields{"url": url}, err)
			continue
		}

		pageLinks, err := harvest.Harvest(doc, src.BaseURL, pattern)
		if err != nil {
			return nil, err
		}
		links = append(links, pageLinks...)
		logger.Info("Processed index page", logger.Fields{
			"url":   url,
			"page":  i,
			"pages": totalPages,
			"links": len(pageLinks),
		})
	}

	seen := make(map[string]bool, len(links))
	unique := make([]string, 0, len(links))
	for _, link := range links {
		if !seen[link] {
			seen[link] = true
			unique = append(unique, link)
		}
	}
	logger.Info("Collected detail links", logger.Fields{"unique_links": len(unique)})
	return unique, nil
}

// fetchDetail fetches and parses one detail page. Failures are logged and
// reported as !ok so the caller can skip the record.
func (c *Collector) fetchDetail(ctx context.Context, url string, n, total int) (*htmldoc.Document, bool) {
	start := time.Now()
	html, err := c.fetcher.Get(ctx, url)
	if err != nil {
		logger.Error("Failed to fetch detail page", logger.Fields{"url": url}, err)
		logger.IncrCounter("detail.fetch_errors")
		return nil, false
	}
	logger.RecordTiming("fetch.detail", time.Since(start))

	doc, err := htmldoc.Parse(html)
	if err != nil {
		logger.Error("Failed to parse detail page", logger.Fields{"url": url}, err)
		return nil, false
	}

	if n%50 == 0 {
		logger.Info("Detail progress", logger.Fields{"processed": n, "total": total})
	}
	return doc, true
}

// loadCampIndex loads a camps file into a lookup keyed by normalized camp
// name. A missing or unreadable file disables enrichment with a warning.
func (c *Collector) loadCampIndex(path string) map[string]*record.Camp {
	if path == "" {
		return nil
	}
	camps, err := storage.LoadCamps(path)
	if err != nil {
		logger.Warn("Failed to load camps file; events will not be enriched",
			logger.Fields{"path": path})
		return nil
	}
	index := make(map[string]*record.Camp, len(camps))
	for _, camp := range camps {
		key := normalizeCampName(camp.Name)
		if key == "" {
			continue
		}
		index[key] = camp
	}
	logger.Info("Loaded camps for enrichment", logger.Fields{"camps": len(index), "path": path})
	return index
}
