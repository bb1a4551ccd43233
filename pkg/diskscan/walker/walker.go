// Package walker implements the threaded directory walker (spec §4.3) and
// the bottom-up tree finalizer (spec §4.4). The walker fans a work queue of
// directory tasks out across a fixed pool of goroutines; each directory is
// owned by exactly one worker for its entire processing, so no lock is
// needed on a node's Children slice.
package walker

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/mdemirhan/dux/pkg/diskscan/logging"
	"github.com/mdemirhan/dux/pkg/diskscan/platform"
	"github.com/mdemirhan/dux/pkg/diskscan/queue"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

// ProgressFunc reports scan progress. It must be cheap or non-blocking: the
// walker does not rate-limit beyond calling it roughly once per 100
// processed entries.
type ProgressFunc func(currentPath string, filesSeen, directoriesSeen int64)

// CancelFunc is polled once after each directory a worker processes. Once
// it returns true, workers finish their current directory and skip every
// directory still in the queue without listing it.
type CancelFunc func() bool

// ErrRootNotFound is returned when the scan root does not exist.
var ErrRootNotFound = errors.New("diskscan: root path not found")

// ErrRootNotDirectory is returned when the scan root exists but is not a
// directory.
var ErrRootNotDirectory = errors.New("diskscan: root path is not a directory")

// ErrCancelled is the distinguished return from Scan when the cancel
// predicate fires before the scan completes.
var ErrCancelled = errors.New("diskscan: scan cancelled")

// Options configures Scan.
type Options struct {
	// WorkerCount is the number of goroutines fanned across directory
	// tasks. Values below 1 are treated as 1.
	WorkerCount int

	// MaxDepth bounds traversal depth relative to the root (depth 0).
	// Nil means unlimited.
	MaxDepth *int

	// OnProgress, if non-nil, is invoked periodically with running totals.
	OnProgress ProgressFunc

	// Cancel, if non-nil, is polled periodically; once it returns true the
	// scan stops and Scan returns ErrCancelled.
	Cancel CancelFunc
}

// progressEvery is the approximate number of processed entries between
// progress callbacks, matching spec §6.2 ("not called more than ~N times
// per scan where N ≈ entries ÷ 100").
const progressEvery = 100

var log = logging.Get("walker")

// Scan performs a parallel scan of rootPath, returning a ScanSnapshot with
// an un-finalized tree (call Finalize before reading aggregated sizes or
// iterating children in disk-usage order).
func Scan(rootPath string, opts Options) (*types.ScanSnapshot, error) {
	root, err := resolveRoot(rootPath)
	if err != nil {
		return nil, err
	}

	workerCount := opts.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}

	rootNode := types.NewDirNode(root, filepath.Base(root))
	stats := &types.ScanStats{Directories: 1}

	w := &walkState{
		q:        queue.New(),
		opts:     opts,
		stats:    stats,
		rootPath: root,
	}
	w.q.Put(queue.Task{Node: rootNode, Depth: 0})

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	w.q.Join()

	for i := 0; i < workerCount; i++ {
		w.q.Put(queue.Task{Node: nil})
	}
	wg.Wait()
	w.q.Close()

	if w.cancelled.Load() {
		log.Debug("scan cancelled", "root", root)
		return nil, ErrCancelled
	}

	log.Debug("scan complete", "root", root, "files", stats.Files, "directories", stats.Directories, "access_errors", stats.AccessErrors)
	return &types.ScanSnapshot{Root: rootNode, Stats: *stats}, nil
}

// walkState is the shared state read and written by every worker goroutine
// during one Scan call. Only statsMu and the queue's own locking guard
// concurrent access; everything else is either atomic or partitioned by
// directory ownership.
type walkState struct {
	q        *queue.Queue
	opts     Options
	rootPath string

	statsMu sync.Mutex
	stats   *types.ScanStats

	cancelled      atomic.Bool
	processedTotal atomic.Int64
}

func (w *walkState) run() {
	for {
		task, ok := w.q.Get()
		if !ok {
			return
		}
		if task.Node == nil {
			w.q.TaskDone()
			return
		}
		if w.cancelled.Load() {
			w.q.TaskDone()
			continue
		}
		w.processDirectory(task)
		w.q.TaskDone()
	}
}

func (w *walkState) processDirectory(task queue.Task) {
	entries, errCount := platform.ScanOne(task.Node.Path)

	var localFiles, localDirs int64
	withinDepth := w.opts.MaxDepth == nil || task.Depth+1 <= *w.opts.MaxDepth

	for _, e := range entries {
		childPath := filepath.Join(task.Node.Path, e.Name)
		if e.IsDir {
			child := types.NewDirNode(childPath, e.Name)
			task.Node.Children = append(task.Node.Children, child)
			localDirs++
			if withinDepth {
				w.q.Put(queue.Task{Node: child, Depth: task.Depth + 1})
			}
		} else {
			child := types.NewFileNode(childPath, e.Name, e.SizeBytes, e.DiskUsage)
			task.Node.Children = append(task.Node.Children, child)
			localFiles++
		}
	}

	w.statsMu.Lock()
	w.stats.Files += localFiles
	w.stats.Directories += localDirs
	w.stats.AccessErrors += int64(errCount)
	filesSeen, dirsSeen := w.stats.Files, w.stats.Directories
	w.statsMu.Unlock()

	if errCount > 0 {
		log.Warn("directory read incomplete", "path", task.Node.Path, "errors", errCount)
	}

	w.reportProgress(task.Node.Path, localFiles+localDirs, filesSeen, dirsSeen)

	if w.opts.Cancel != nil && w.opts.Cancel() {
		w.cancelled.Store(true)
	}
}

func (w *walkState) reportProgress(currentPath string, delta, filesSeen, dirsSeen int64) {
	if w.opts.OnProgress == nil || delta == 0 {
		return
	}
	before := w.processedTotal.Add(delta) - delta
	after := before + delta
	if before/progressEvery == after/progressEvery {
		return
	}
	w.opts.OnProgress(currentPath, filesSeen, dirsSeen)
}
