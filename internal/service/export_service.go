package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"spritepad/internal/domain"
	"spritepad/internal/export"
)

// ─────────────────────────────────────────────────────────────
// Export Service: the export sink, its index and retention
// ─────────────────────────────────────────────────────────────

const (
	retentionJob  = "retention"
	watchDebounce = 200 * time.Millisecond
)

// ExportService writes uploaded frame sequences to the output directory
// and keeps the SQLite index of those files current.
type ExportService struct {
	store   domain.ExportStore
	dir     string
	emitter EventEmitter
	now     func() time.Time

	sweeps runningJobsGuard

	// watcher / cron lifecycle
	watchCancel context.CancelFunc
	watcher     *fsnotify.Watcher
	cronSched   *cron.Cron

	// per-file debouncers and sizes of files Save already indexed;
	// both only used while the watcher runs
	watchMu  sync.Mutex
	watching bool
	pending  map[string]func(func())
	saved    map[string]int64
}

// NewExportService creates an ExportService writing into dir.
func NewExportService(store domain.ExportStore, dir string, emitter EventEmitter) *ExportService {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &ExportService{
		store:   store,
		dir:     dir,
		emitter: emitter,
		now:     time.Now,
		pending: make(map[string]func(func())),
		saved:   make(map[string]int64),
	}
}

// SetClock replaces the time source used for file names. Tests only.
func (s *ExportService) SetClock(now func() time.Time) { s.now = now }

// Dir returns the output directory.
func (s *ExportService) Dir() string { return s.dir }

// Save writes body verbatim to a file named after the current time. An
// existing file with the same name is overwritten. Indexing failures are
// logged and do not fail the save.
func (s *ExportService) Save(ctx context.Context, body []byte) (string, error) {
	name := export.FileName(s.now())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("write export %s: %w", name, err)
	}
	if _, err := s.index(ctx, name, body); err != nil {
		log.Printf("export: index %s: %v", name, err)
	} else {
		s.watchMu.Lock()
		if s.watching {
			s.saved[name] = int64(len(body))
		}
		s.watchMu.Unlock()
	}
	return name, nil
}

// Index reads an export file from the output directory and upserts its
// index row.
func (s *ExportService) Index(ctx context.Context, name string) (*domain.ExportRecord, error) {
	body, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", name, err)
	}
	return s.index(ctx, name, body)
}

func (s *ExportService) index(ctx context.Context, name string, body []byte) (*domain.ExportRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	rec := &domain.ExportRecord{
		ID:        uuid.New().String(),
		FileName:  name,
		SizeBytes: int64(len(body)),
		CreatedAt: s.now(),
	}
	if frames, err := export.Decode(body); err == nil {
		rec.FrameCount = len(frames)
		for _, f := range frames {
			rec.CellCount += len(f)
		}
	}
	if err := s.store.UpsertExport(rec); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, EventExportIndexed, rec)
	return rec, nil
}

// List returns indexed exports, newest first.
func (s *ExportService) List() ([]domain.ExportRecord, error) {
	if s.store == nil {
		return []domain.ExportRecord{}, nil
	}
	records, err := s.store.ListExports()
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	if records == nil {
		records = []domain.ExportRecord{}
	}
	return records, nil
}

// Get returns one index row.
func (s *ExportService) Get(id string) (*domain.ExportRecord, error) {
	if s.store == nil {
		return nil, domain.ErrExportNotFound
	}
	return s.store.GetExport(id)
}

// Frames decodes the export file behind index row id.
func (s *ExportService) Frames(id string) ([]domain.Frame, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(filepath.Join(s.dir, rec.FileName))
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", rec.FileName, err)
	}
	return export.Decode(body)
}

// ── Retention ─────────────────────────────────────────────

// Sweep deletes exports created more than maxAge ago, files and index rows.
// It returns how many were removed. A sweep already in progress makes this
// call return immediately with zero.
func (s *ExportService) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	if s.store == nil || maxAge <= 0 {
		return 0, nil
	}
	if !s.sweeps.TryLock(retentionJob) {
		log.Printf("export retention: sweep already running, skipping")
		return 0, nil
	}
	defer s.sweeps.Unlock(retentionJob)

	old, err := s.store.ListExportsBefore(s.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("list old exports: %w", err)
	}
	removed := 0
	for _, rec := range old {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		err := os.Remove(filepath.Join(s.dir, rec.FileName))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("export retention: remove %s: %v", rec.FileName, err)
			continue
		}
		if err := s.store.DeleteExport(rec.ID); err != nil {
			log.Printf("export retention: delete index row %s: %v", rec.ID, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.emitter.Emit(ctx, EventExportPruned, removed)
	}
	return removed, nil
}

// StartRetention schedules Sweep on a cron expression. An empty schedule
// disables retention.
func (s *ExportService) StartRetention(ctx context.Context, schedule string, maxAge time.Duration) error {
	if schedule == "" || maxAge <= 0 {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.Sweep(ctx, maxAge)
		if err != nil {
			log.Printf("export retention: sweep failed: %v", err)
			return
		}
		log.Printf("export retention: removed %d export(s)", n)
	})
	if err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cronSched = c
	log.Printf("export retention: scheduled %q, max age %s", schedule, maxAge)
	return nil
}

// ── Output directory watcher ──────────────────────────────

// StartWatcher indexes JSON files created or rewritten in the output
// directory by anything, including hand copies.
func (s *ExportService) StartWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	s.watcher = watcher
	s.watchMu.Lock()
	s.watching = true
	s.watchMu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	s.watchCancel = cancel
	go s.watchLoop(watchCtx, watcher)
	return nil
}

func (s *ExportService) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			s.scheduleIndex(ctx, name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("export watcher: watcher error: %v", err)
		}
	}
}

// scheduleIndex coalesces the Create and Write events of one file into a
// single Index call once the file has been quiet for watchDebounce.
func (s *ExportService) scheduleIndex(ctx context.Context, name string) {
	s.watchMu.Lock()
	d, ok := s.pending[name]
	if !ok {
		d = debounce.New(watchDebounce)
		s.pending[name] = d
	}
	s.watchMu.Unlock()

	d(func() { s.indexWatched(ctx, name) })
}

func (s *ExportService) indexWatched(ctx context.Context, name string) {
	s.watchMu.Lock()
	delete(s.pending, name)
	size, ours := s.saved[name]
	delete(s.saved, name)
	s.watchMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if ours {
		info, err := os.Stat(filepath.Join(s.dir, name))
		if err == nil && info.Size() == size {
			return
		}
	}
	if _, err := s.Index(ctx, name); err != nil {
		log.Printf("export watcher: %v", err)
	}
}

// Stop tears down the watcher and the retention schedule and waits for a
// running sweep to finish or ctx to expire.
func (s *ExportService) Stop(ctx context.Context) {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	s.watchMu.Lock()
	s.watching = false
	clear(s.saved)
	s.watchMu.Unlock()
	if s.cronSched != nil {
		<-s.cronSched.Stop().Done()
		s.cronSched = nil
	}
	s.sweeps.WaitAll(ctx)
}
