package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cookingapp/internal/models"
	"cookingapp/internal/schedule/interfaces"
	"cookingapp/internal/structures"
	"cookingapp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, compress bool) (interfaces.StoreInterface, string, *testutil.MockLogger, *testutil.MockMetrics) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cooking_app_prefs", "dish_key.dat")
	conf := &structures.Config{Store: structures.StoreConfig{FilePath: path, Compress: compress}}

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}

	s, err := NewFileStore(conf, comp, logger, metrics)
	require.NoError(t, err)
	return s, path, logger, metrics
}

func jeeraRice() *models.Dish {
	return &models.Dish{
		Published:    models.Bool(true),
		ID:           models.String("6535"),
		ImageURL:     models.String("https://nosh-assignment.s3.ap-south-1.amazonaws.com/jeera-rice.jpg"),
		Name:         models.String("Jeera Rice"),
		ScheduleTime: models.String("7:05 AM"),
	}
}

func TestFileStore_LoadEmptySlot(t *testing.T) {
	s, _, logger, metrics := newTestStore(t, false)
	assert.Nil(t, s.Load())
	assert.Zero(t, metrics.StoreCorruption)
	assert.Zero(t, logger.CountLevel("error"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		s, _, _, metrics := newTestStore(t, compress)
		d := jeeraRice()

		require.NoError(t, s.Save(d))
		assert.Equal(t, d, s.Load())
		assert.Equal(t, 1, metrics.Persists)
	}
}

func TestFileStore_RoundTripSparseDish(t *testing.T) {
	s, _, _, _ := newTestStore(t, false)
	d := &models.Dish{Name: models.String("Gulab Jamun")}

	require.NoError(t, s.Save(d))
	assert.Equal(t, d, s.Load())
}

func TestFileStore_SaveReplacesPrior(t *testing.T) {
	s, _, _, _ := newTestStore(t, false)
	require.NoError(t, s.Save(jeeraRice()))

	next := &models.Dish{ID: models.String("7"), Name: models.String("Dal Makhani"), ScheduleTime: models.String("8:30 PM")}
	require.NoError(t, s.Save(next))

	assert.Equal(t, next, s.Load())
}

func TestFileStore_SaveNil(t *testing.T) {
	s, _, _, _ := newTestStore(t, false)
	assert.ErrorIs(t, s.Save(nil), ErrNilDish)
}

func TestFileStore_Clear(t *testing.T) {
	s, path, _, _ := newTestStore(t, false)
	require.NoError(t, s.Save(jeeraRice()))

	require.NoError(t, s.Clear())
	assert.Nil(t, s.Load())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_ClearEmptySlot(t *testing.T) {
	s, _, _, _ := newTestStore(t, false)
	assert.NoError(t, s.Clear())
	assert.Nil(t, s.Load())
}

func TestFileStore_NoTempFileLeft(t *testing.T) {
	s, path, _, _ := newTestStore(t, true)
	require.NoError(t, s.Save(jeeraRice()))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	s, path, _, _ := newTestStore(t, true)
	require.NoError(t, s.Save(jeeraRice()))

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	conf := &structures.Config{Store: structures.StoreConfig{FilePath: path}}
	reopened, err := NewFileStore(conf, comp, &testutil.MockLogger{}, &testutil.MockMetrics{})
	require.NoError(t, err)

	// compression flag changed between runs; reads still detect the frame
	assert.Equal(t, jeeraRice(), reopened.Load())
}

func TestFileStore_CorruptRecordTreatedAsAbsent(t *testing.T) {
	s, path, logger, metrics := newTestStore(t, false)
	require.NoError(t, os.WriteFile(path, []byte(`{"dishName":`), 0o644))

	assert.Nil(t, s.Load())
	assert.Equal(t, 1, metrics.StoreCorruption)
	assert.Equal(t, 1, logger.CountLevel("warn"))
}

func TestFileStore_CorruptCompressedFrame(t *testing.T) {
	s, path, _, metrics := newTestStore(t, true)
	bad := append([]byte{0x28, 0xb5, 0x2f, 0xfd}, []byte("garbage")...)
	require.NoError(t, os.WriteFile(path, bad, 0o644))

	assert.Nil(t, s.Load())
	assert.Equal(t, 1, metrics.StoreCorruption)
}

func TestFileStore_NullAndEmptyRecords(t *testing.T) {
	s, path, _, metrics := newTestStore(t, false)

	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))
	assert.Nil(t, s.Load())

	require.NoError(t, os.WriteFile(path, []byte("  "), 0o644))
	assert.Nil(t, s.Load())

	assert.Equal(t, 2, metrics.StoreCorruption)
}

func TestFileStore_CompressorFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.dat")
	conf := &structures.Config{Store: structures.StoreConfig{FilePath: path, Compress: true}}
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) {
		return nil, errors.New("compress failed")
	}}

	s, err := NewFileStore(conf, comp, &testutil.MockLogger{}, &testutil.MockMetrics{})
	require.NoError(t, err)

	assert.Error(t, s.Save(jeeraRice()))
	assert.Nil(t, s.Load())
}

func TestFileStore_WriteFailureKeepsPrior(t *testing.T) {
	s, path, logger, _ := newTestStore(t, false)
	require.NoError(t, s.Save(jeeraRice()))

	// a directory where the temp file should go makes os.Create fail
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	err := s.Save(&models.Dish{Name: models.String("Other")})
	assert.Error(t, err)
	assert.Equal(t, 1, logger.CountLevel("error"))
	assert.Equal(t, jeeraRice(), s.Load())
}

func TestFileStore_CorruptSlotReportedOnce(t *testing.T) {
	s, path, logger, metrics := newTestStore(t, false)
	require.NoError(t, os.WriteFile(path, []byte(`{"dishName":`), 0o644))

	for i := 0; i < 6; i++ {
		assert.Nil(t, s.Load())
	}
	assert.Equal(t, 1, metrics.StoreCorruption)
	assert.Equal(t, 1, logger.CountLevel("warn"))

	// a different bad revision is reported again
	require.NoError(t, os.WriteFile(path, []byte(`{"dishId":"6535",`), 0o644))
	assert.Nil(t, s.Load())
	assert.Nil(t, s.Load())
	assert.Equal(t, 2, metrics.StoreCorruption)
	assert.Equal(t, 2, logger.CountLevel("warn"))
}

func TestFileStore_CloseReleasesCompressor(t *testing.T) {
	comp := &testutil.MockCompressor{}
	conf := &structures.Config{Store: structures.StoreConfig{FilePath: filepath.Join(t.TempDir(), "slot.dat")}}
	s, err := NewFileStore(conf, comp, &testutil.MockLogger{}, &testutil.MockMetrics{})
	require.NoError(t, err)

	s.Close()
	assert.True(t, comp.Closed)
}
