package collector

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent downloads against the regulator's site.
const maxParallel = 4

// Collector downloads the configured set of operator reports.
type Collector struct {
	Fetcher Fetcher
	Reports []Report
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, reports []Report) *Collector {
	return &Collector{Fetcher: fetcher, Reports: reports}
}

// Download fetches all reports concurrently into dir and returns the local
// path per report name. Individual failures are logged and skipped; an error
// is returned only when nothing could be downloaded.
func (c *Collector) Download(ctx context.Context, dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}

	var mu sync.Mutex
	paths := make(map[string]string, len(c.Reports))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, report := range c.Reports {
		report := report
		g.Go(func() error {
			data, err := c.Fetcher.Fetch(ctx, report)
			if err != nil {
				log.Printf("[WARN] download %s: %v", report.Name, err)
				return nil
			}
			path := filepath.Join(dir, report.Filename)
			if err := os.WriteFile(path, data, 0644); err != nil {
				log.Printf("[WARN] write %s: %v", report.Filename, err)
				return nil
			}
			log.Printf("[INFO] downloaded %s: %d bytes", report.Name, len(data))
			mu.Lock()
			paths[report.Name] = path
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("all %d report downloads failed", len(c.Reports))
	}
	return paths, nil
}
