// ABOUTME: Append-only JSON file store for buyer intent soft signals
// ABOUTME: Writes go through a temp file and rename; external edits are picked up via fsnotify

package signalstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
)

// FileStore keeps the full intent list in memory and mirrors it to a JSON file.
type FileStore struct {
	path   string
	logger interfaces.Logger
	now    func() time.Time

	mu      sync.RWMutex
	writeMu sync.Mutex
	intents []domain.BuyerIntent

	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

var (
	_ interfaces.SignalStore  = (*FileStore)(nil)
	_ interfaces.BeliefSource = (*FileStore)(nil)
)

// Open loads the store at path. A missing file is an empty store.
func Open(path string, logger interfaces.Logger) (*FileStore, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	s := &FileStore{
		path:   path,
		logger: logger,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory snapshot with the file contents. A
// missing or empty file loads as an empty store.
func (s *FileStore) Reload() error {
	intents, _, err := readFile(s.path)
	if err != nil {
		return err
	}
	s.swap(intents)
	return nil
}

func (s *FileStore) swap(intents []domain.BuyerIntent) {
	s.mu.Lock()
	s.intents = intents
	s.mu.Unlock()
}

// readFile decodes the store file. present is false when the file is
// missing or blank; intents is then empty.
func readFile(path string) (intents []domain.BuyerIntent, present bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []domain.BuyerIntent{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read signal store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []domain.BuyerIntent{}, false, nil
	}

	if err := json.Unmarshal(data, &intents); err != nil {
		return nil, true, fmt.Errorf("decode signal store %s: %w", path, err)
	}
	if intents == nil {
		intents = []domain.BuyerIntent{}
	}
	return intents, true, nil
}

// List returns a copy of every stored intent in insertion order
func (s *FileStore) List(ctx context.Context) ([]domain.BuyerIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.BuyerIntent, len(s.intents))
	copy(out, s.intents)
	return out, nil
}

// Append validates intent, fills in ID and CreatedAt when absent, and
// persists the new list. The in-memory snapshot only changes after the
// file has been replaced.
func (s *FileStore) Append(ctx context.Context, intent domain.BuyerIntent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Validate(intent); err != nil {
		return err
	}
	if intent.ID == "" {
		intent.ID = uuid.NewString()
	}
	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = s.now().UTC()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := make([]domain.BuyerIntent, len(s.intents), len(s.intents)+1)
	copy(next, s.intents)
	s.mu.RUnlock()

	for _, existing := range next {
		if existing.ID == intent.ID {
			return &errors.ValidationError{Field: "id", Message: fmt.Sprintf("intent %q already exists", intent.ID)}
		}
	}
	next = append(next, intent)

	if err := writeAtomic(s.path, next); err != nil {
		return err
	}

	s.mu.Lock()
	s.intents = next
	s.mu.Unlock()
	return nil
}

// Validate checks the fields a buyer intent must carry
func Validate(intent domain.BuyerIntent) error {
	if strings.TrimSpace(intent.Commodity) == "" {
		return &errors.ValidationError{Field: "commodity", Message: "is required"}
	}
	if intent.Confidence < 0 || intent.Confidence > 1 {
		return &errors.ValidationError{Field: "confidence", Message: "must be between 0 and 1"}
	}
	if intent.Quantity != nil && *intent.Quantity < 0 {
		return &errors.ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	if intent.MaxPrice != nil && *intent.MaxPrice < 0 {
		return &errors.ValidationError{Field: "maxPrice", Message: "must not be negative"}
	}
	return nil
}

func writeAtomic(path string, intents []domain.BuyerIntent) error {
	data, err := json.MarshalIndent(intents, "", "  ")
	if err != nil {
		return fmt.Errorf("encode signal store: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create signal store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".signals-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()
	if writeErr != nil || syncErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing signal store: %v", firstErr(writeErr, syncErr, closeErr))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Watch reloads the snapshot whenever the file is changed by another
// process. The parent directory is watched because rename swaps the inode.
func (s *FileStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	s.watcher = watcher

	go s.watchLoop()
	return nil
}

func (s *FileStore) watchLoop() {
	target := filepath.Clean(s.path)
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			s.reloadFromDisk()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Signal store watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// reloadFromDisk swaps in the file contents after an external change.
// Missing, blank and corrupt files leave the snapshot untouched.
func (s *FileStore) reloadFromDisk() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	intents, present, err := readFile(s.path)
	if err != nil {
		s.logger.Warn("Signal store reload failed, keeping last snapshot", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}
	if !present {
		s.logger.Debug("Signal store file missing or empty, keeping last snapshot", map[string]interface{}{
			"path": s.path,
		})
		return
	}

	s.swap(intents)
	s.logger.Debug("Signal store reloaded", map[string]interface{}{
		"path":    s.path,
		"intents": len(intents),
	})
}

// Close stops the watcher if one is running
func (s *FileStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
