package schedule

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cookingapp/internal/models"
	"cookingapp/internal/providers"
	"cookingapp/internal/schedule/interfaces"
	"cookingapp/internal/structures"

	json "github.com/goccy/go-json"
)

var ErrNilDish = errors.New("schedule: nil dish")

// FileStore keeps the scheduled dish in one file. Writes go through a temp
// file and rename so a crash never leaves a half-written slot.
type FileStore struct {
	path       string
	compress   bool
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	mu         sync.RWMutex

	corruptMu sync.Mutex
	corrupt   slotStamp
}

// slotStamp identifies one revision of the slot file on disk.
type slotStamp struct {
	size    int64
	modTime time.Time
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.StoreInterface, error) {
	if err := os.MkdirAll(filepath.Dir(conf.Store.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create store directory: %w", err)
	}
	return &FileStore{
		path:       conf.Store.FilePath,
		compress:   conf.Store.Compress,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

func (s *FileStore) Save(dish *models.Dish) error {
	if dish == nil {
		return ErrNilDish
	}
	start := time.Now()

	data, err := json.Marshal(dish)
	if err != nil {
		return err
	}
	if s.compress {
		data, err = s.compressor.Compress(data)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = writeAtomic(s.path, data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Unable to persist scheduled dish: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (s *FileStore) Load() *models.Dish {
	s.mu.RLock()
	data, stamp, err := readSlot(s.path)
	s.mu.RUnlock()
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Errorf(providers.TypeApp, "Unable to read schedule slot: %s", err)
		}
		return nil
	}

	dish, err := s.decode(data)
	if err != nil {
		s.reportCorrupt(stamp, err)
		return nil
	}
	return dish
}

// reportCorrupt logs and counts a bad slot once per file revision.
func (s *FileStore) reportCorrupt(stamp slotStamp, err error) {
	s.corruptMu.Lock()
	seen := s.corrupt.size == stamp.size && s.corrupt.modTime.Equal(stamp.modTime)
	s.corrupt = stamp
	s.corruptMu.Unlock()
	if seen {
		return
	}
	s.logger.Warnf(providers.TypeApp, "Schedule slot %s is corrupt, treating as empty: %s", s.path, err)
	s.metrics.IncStoreCorruption()
}

func readSlot(path string) ([]byte, slotStamp, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, slotStamp{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, slotStamp{}, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, slotStamp{}, err
	}
	return data, slotStamp{size: info.Size(), modTime: info.ModTime()}, nil
}

func (s *FileStore) decode(data []byte) (*models.Dish, error) {
	var err error
	if isCompressed(data) {
		data, err = s.compressor.Decompress(data)
		if err != nil {
			return nil, err
		}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty record")
	}

	var dish *models.Dish
	if err = json.Unmarshal(data, &dish); err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, errors.New("null record")
	}
	return dish, nil
}

// Close releases the compressor.
func (s *FileStore) Close() {
	s.compressor.Close()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writeAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
