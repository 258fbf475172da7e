package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fgibacktest/internal/domain"

	"github.com/gocarina/gocsv"
)

const (
	sentimentCacheFile = "sentiment.csv"
	priceCacheFile     = "price.csv"
)

var ErrCacheMiss = errors.New("cache file not found")

type CachedSentiment struct {
	Points     []domain.SentimentPoint
	ModifiedAt time.Time
}

type CachedPrices struct {
	Points     []domain.PricePoint
	ModifiedAt time.Time
}

// SeriesCacheRepository persists one csv per series kind. writes merge into
// what is already on disk, new rows win on a date collision
type SeriesCacheRepository interface {
	ReadSentiment() (*CachedSentiment, error)
	WriteSentiment(points []domain.SentimentPoint) error
	ReadPrices() (*CachedPrices, error)
	WritePrices(points []domain.PricePoint) error
}

type seriesCacheRepositoryHandler struct {
	Dir string

	mu    *sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSeriesCacheRepository(dir string) SeriesCacheRepository {
	return seriesCacheRepositoryHandler{
		Dir:   dir,
		mu:    &sync.Mutex{},
		locks: map[string]*sync.Mutex{},
	}
}

// fileLock hands out one mutex per cache file so a read-merge-write on
// sentiment.csv never blocks one on price.csv
func (h seriesCacheRepositoryHandler) fileLock(name string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.locks[name]; !ok {
		h.locks[name] = &sync.Mutex{}
	}
	return h.locks[name]
}

func (h seriesCacheRepositoryHandler) path(name string) string {
	return filepath.Join(h.Dir, name)
}

func (h seriesCacheRepositoryHandler) ReadSentiment() (*CachedSentiment, error) {
	rows := []*sentimentCsvRow{}
	modifiedAt, err := h.readFile(sentimentCacheFile, &rows)
	if err != nil {
		return nil, err
	}
	points, skipped := sentimentFromRows(rows)
	if skipped > 0 {
		return nil, fmt.Errorf("sentiment cache has %d unreadable rows", skipped)
	}
	return &CachedSentiment{
		Points:     points,
		ModifiedAt: modifiedAt,
	}, nil
}

func (h seriesCacheRepositoryHandler) ReadPrices() (*CachedPrices, error) {
	rows := []*priceCsvRow{}
	modifiedAt, err := h.readFile(priceCacheFile, &rows)
	if err != nil {
		return nil, err
	}
	points, skipped := priceFromRows(rows)
	if skipped > 0 {
		return nil, fmt.Errorf("price cache has %d unreadable rows", skipped)
	}
	return &CachedPrices{
		Points:     points,
		ModifiedAt: modifiedAt,
	}, nil
}

func (h seriesCacheRepositoryHandler) WriteSentiment(points []domain.SentimentPoint) error {
	lock := h.fileLock(sentimentCacheFile)
	lock.Lock()
	defer lock.Unlock()

	merged := map[time.Time]domain.SentimentPoint{}
	existing, err := h.ReadSentiment()
	if err == nil {
		for _, p := range existing.Points {
			merged[p.Date] = p
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		return fmt.Errorf("failed to read sentiment cache before merge: %w", err)
	}
	for _, p := range points {
		merged[p.Date] = p
	}

	out := make([]domain.SentimentPoint, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	rows := sentimentToRows(out)
	return h.writeFile(sentimentCacheFile, &rows)
}

func (h seriesCacheRepositoryHandler) WritePrices(points []domain.PricePoint) error {
	lock := h.fileLock(priceCacheFile)
	lock.Lock()
	defer lock.Unlock()

	merged := map[time.Time]domain.PricePoint{}
	existing, err := h.ReadPrices()
	if err == nil {
		for _, p := range existing.Points {
			merged[p.Date] = p
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		return fmt.Errorf("failed to read price cache before merge: %w", err)
	}
	for _, p := range points {
		merged[p.Date] = p
	}

	out := make([]domain.PricePoint, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	rows := priceToRows(out)
	return h.writeFile(priceCacheFile, &rows)
}

func (h seriesCacheRepositoryHandler) readFile(name string, out interface{}) (time.Time, error) {
	f, err := os.Open(h.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, fmt.Errorf("%s: %w", name, ErrCacheMiss)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return info.ModTime(), nil
}

// writeFile goes through a temp file and a rename so readers never see a
// partially written cache
func (h seriesCacheRepositoryHandler) writeFile(name string, rows interface{}) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir %s: %w", h.Dir, err)
	}
	tmp, err := os.CreateTemp(h.Dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := gocsv.MarshalFile(rows, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	if err := os.Rename(tmpName, h.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
