package project

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateQuote/internal/model"
)

func TestOpenStoreSeedsAndPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.NotEmpty(t, s.Catalog().Plates)
	assert.Empty(t, s.Quotes(""))

	stored, err := s.SaveQuote(model.Quote{StudyNumber: "ET-001", Quantity: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, []string{"ET-001"}, s.Config().RecentStudies)

	reopened, err := OpenStore(dir)
	require.NoError(t, err)
	got, ok := reopened.Quote(stored.ID)
	require.True(t, ok)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, []string{"ET-001"}, reopened.Config().RecentStudies)
}

func TestStoreQuotesFilterAndDelete(t *testing.T) {
	s, err := OpenStore(t.TempDir())
	require.NoError(t, err)

	a, err := s.SaveQuote(model.Quote{StudyNumber: "ET-001"})
	require.NoError(t, err)
	_, err = s.SaveQuote(model.Quote{StudyNumber: "ET-002"})
	require.NoError(t, err)

	assert.Len(t, s.Quotes(""), 2)
	assert.Len(t, s.Quotes("et-001"), 1)

	removed, err := s.DeleteQuote(a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteQuote(a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, s.Stats().QuoteCount)
}

func TestStoreAddPlates(t *testing.T) {
	s, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	before := len(s.Catalog().Plates)

	added, err := s.AddPlates([]model.Plate{
		model.NewPlate("Dibond 3mm 3050x1500", 3050, 1500, 42, "Dibond 3mm"),
		s.Catalog().Plates[0],
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Len(t, s.Catalog().Plates, before+1)
	assert.Equal(t, before+1, s.Stats().PlateCount)
}

func TestStoreExportRestore(t *testing.T) {
	s, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.SaveQuote(model.Quote{StudyNumber: "ET-009"})
	require.NoError(t, err)

	backup := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, s.Export(backup))

	other, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, other.Restore(backup))
	assert.Len(t, other.Quotes("ET-009"), 1)

	assert.Error(t, other.Restore(filepath.Join(t.TempDir(), "missing.json")))
}

func TestStoreConcurrentSaves(t *testing.T) {
	s, err := OpenStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.SaveQuote(model.Quote{StudyNumber: "ET-C"})
			_ = s.Stats()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, s.Stats().QuoteCount)
}
