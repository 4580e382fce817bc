package session

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/ingestion"
	"github.com/jonathan/channel-dashboard/internal/ingestion/ingestiontest"
	"github.com/jonathan/channel-dashboard/internal/types"
)

var fixedNow = time.Date(2025, time.July, 1, 9, 30, 0, 0, time.UTC)

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(config.Default(), WithSeed(1), WithClock(func() time.Time { return fixedNow }))
}

func loadSample(t *testing.T, s *Session) *Dataset {
	t.Helper()
	data := ingestiontest.XLSX(t, ingestiontest.SampleSheets()...)
	ds, err := s.Load(bytes.NewReader(data), "hires.xlsx")
	require.NoError(t, err)
	return ds
}

func TestSession_Load(t *testing.T) {
	s := newSession(t)
	ds := loadSample(t, s)

	_, err := uuid.Parse(ds.ID)
	assert.NoError(t, err)
	assert.Equal(t, "hires.xlsx", ds.Filename)
	assert.Equal(t, fixedNow, ds.LoadedAt)
	assert.Len(t, ds.Records, 10)
	assert.Equal(t, 1, ds.Excluded, "Overseas Functional System is excluded by default")

	current, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, ds, current)
}

func TestSession_Summary(t *testing.T) {
	s := newSession(t)
	assert.False(t, s.Summary().Loaded)
	assert.NotNil(t, s.Summary().JobCategories)

	loadSample(t, s)
	sum := s.Summary()

	assert.True(t, sum.Loaded)
	assert.Equal(t, 10, sum.Records)
	assert.Equal(t, []string{"产品", "技术", "设计"}, sum.JobCategories)
	require.NotNil(t, sum.FirstHire)
	require.NotNil(t, sum.LastHire)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *sum.FirstHire)
	assert.Equal(t, time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC), *sum.LastHire)
}

func TestSession_FailedLoadKeepsPreviousDataset(t *testing.T) {
	s := newSession(t)
	ds := loadSample(t, s)

	_, err := s.Load(bytes.NewReader([]byte("not a workbook")), "broken.xlsx")
	require.Error(t, err)

	_, err = s.Load(bytes.NewReader([]byte("a,b")), "notes.txt")
	var unsupported *ingestion.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))

	current, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, ds.ID, current.ID)
}

func TestSession_LoadFile(t *testing.T) {
	s := newSession(t)
	path := ingestiontest.WriteXLSX(t, t.TempDir(), "hires.xlsx", ingestiontest.SampleSheets()...)

	ds, err := s.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 10)

	_, err = s.LoadFile(path + ".missing")
	var loadErr *ingestion.LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestSession_Reset(t *testing.T) {
	s := newSession(t)
	loadSample(t, s)

	s.Reset()

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = s.Report(ReportRequest{})
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = s.Options(types.Selection{})
	assert.ErrorIs(t, err, ErrNoDataset)
	_, _, err = s.SupplyDemand(nil)
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestSession_ConcurrentReadsDuringLoad(t *testing.T) {
	s := newSession(t)
	loadSample(t, s)
	data := ingestiontest.XLSX(t, ingestiontest.SampleSheets()...)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Load(bytes.NewReader(data), "hires.xlsx")
		}()
		go func() {
			defer wg.Done()
			_, err := s.Report(ReportRequest{Variant: "B"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestSession_SupplyDemand(t *testing.T) {
	s := newSession(t)
	loadSample(t, s)

	views, missing, err := s.SupplyDemand(nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
	require.Len(t, views, 3)
	assert.Equal(t, "产品", views[0].Category)
	assert.Equal(t, "2024-05", views[0].Months[len(views[0].Months)-1], "series ends at the last hire month")
	assert.Equal(t, views[0].Values[len(views[0].Values)-1], views[0].Summary.Latest)

	views, missing, err = s.SupplyDemand([]string{"技术", "运营"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "技术", views[0].Category)
	assert.Equal(t, []string{"运营"}, missing)
}

func TestSession_SupplyDemandDeterministicForSeed(t *testing.T) {
	a, b := newSession(t), newSession(t)
	loadSample(t, a)
	loadSample(t, b)

	va, _, err := a.SupplyDemand(nil)
	require.NoError(t, err)
	vb, _, err := b.SupplyDemand(nil)
	require.NoError(t, err)
	assert.Equal(t, va, vb)
}
