package session

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/ingestion"
	"github.com/jonathan/channel-dashboard/internal/normalize"
	"github.com/jonathan/channel-dashboard/internal/options"
	"github.com/jonathan/channel-dashboard/internal/supply"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// Dataset is one successfully loaded upload. It is never mutated after Load returns it.
type Dataset struct {
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	LoadedAt time.Time `json:"loaded_at"`
	// Excluded counts records dropped by the BG exclusion list
	Excluded int                      `json:"excluded"`
	Records  []types.HireRecord       `json:"-"`
	Supply   map[string]supply.Series `json:"-"`
}

// Summary describes the loaded dataset.
type Summary struct {
	Loaded        bool       `json:"loaded"`
	ID            string     `json:"id,omitempty"`
	Filename      string     `json:"filename,omitempty"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
	Records       int        `json:"records"`
	Excluded      int        `json:"excluded"`
	FirstHire     *time.Time `json:"first_hire,omitempty"`
	LastHire      *time.Time `json:"last_hire,omitempty"`
	JobCategories []string   `json:"job_categories"`
}

// Session guards the current dataset. A failed load leaves the previous one in place.
type Session struct {
	mu      sync.RWMutex
	cfg     config.Config
	logger  *zap.Logger
	seed    uint64
	now     func() time.Time
	current *Dataset
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSeed fixes the supply/demand generator seed.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns an empty session using cfg for parsing and reporting.
func New(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = uint64(s.now().UnixNano())
	}
	return s
}

// Config returns the session configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// LoadFile reads a workbook from disk and publishes it.
func (s *Session) LoadFile(path string) (*Dataset, error) {
	wb, err := ingestion.LoadWorkbook(path, s.cfg.Columns.ReferrerSheet)
	if err != nil {
		s.logger.Warn("dataset load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return s.publish(wb), nil
}

// Load reads an uploaded workbook stream and publishes it.
func (s *Session) Load(r io.Reader, filename string) (*Dataset, error) {
	wb, err := ingestion.ReadWorkbook(r, filename, s.cfg.Columns.ReferrerSheet)
	if err != nil {
		s.logger.Warn("dataset load failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	return s.publish(wb), nil
}

func (s *Session) publish(wb *ingestion.Workbook) *Dataset {
	all := normalize.Normalize(wb.Main, wb.Referrers, s.cfg.Columns)
	records := normalize.ExcludeBGs(all, s.cfg.ExcludedBGs)

	end := s.now()
	if _, last, ok := types.DateRange(records); ok {
		end = last
	}
	categories := options.Enumerate(records, types.Selection{}).JobCategories

	ds := &Dataset{
		ID:       uuid.New().String(),
		Filename: wb.Source,
		LoadedAt: s.now().UTC(),
		Excluded: len(all) - len(records),
		Records:  records,
		Supply:   supply.NewGenerator(s.seed, end).Generate(categories),
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	s.logger.Info("dataset loaded",
		zap.String("id", ds.ID),
		zap.String("filename", ds.Filename),
		zap.Int("records", len(records)),
		zap.Int("excluded", ds.Excluded))
	return ds
}

// Current returns the loaded dataset.
func (s *Session) Current() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

// Reset drops the loaded dataset.
func (s *Session) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.logger.Info("dataset reset")
}

// Summary describes the current dataset, or reports Loaded=false.
func (s *Session) Summary() Summary {
	ds, err := s.Current()
	if err != nil {
		return Summary{JobCategories: []string{}}
	}
	return ds.Summary()
}

// Summary describes the dataset.
func (d *Dataset) Summary() Summary {
	loadedAt := d.LoadedAt
	sum := Summary{
		Loaded:        true,
		ID:            d.ID,
		Filename:      d.Filename,
		LoadedAt:      &loadedAt,
		Records:       len(d.Records),
		Excluded:      d.Excluded,
		JobCategories: options.Enumerate(d.Records, types.Selection{}).JobCategories,
	}
	if first, last, ok := types.DateRange(d.Records); ok {
		sum.FirstHire, sum.LastHire = &first, &last
	}
	return sum
}
