package shaders

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bloeys/nframe/logging"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads shader programs when their files change on disk.
//
// File events arrive on a background goroutine that only records changed paths.
// Programs are recompiled by Poll, which must be called on the thread owning the graphics context.
type Watcher struct {
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	watched map[string]struct{}
	pending map[string]struct{}

	// programs is only used from the Poll thread
	programs    map[string][]*ShaderProgram
	watchedDirs map[string]struct{}

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

func NewWatcher() (*Watcher, error) {

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher:   fsWatcher,
		watched:     map[string]struct{}{},
		pending:     map[string]struct{}{},
		programs:    map[string][]*ShaderProgram{},
		watchedDirs: map[string]struct{}{},
		done:        make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Watch reloads prog whenever the file named by prog.Name changes.
// The program must stay at the same address while watched.
func (w *Watcher) Watch(prog *ShaderProgram) error {

	path, err := filepath.Abs(prog.Name)
	if err != nil {
		return fmt.Errorf("failed to watch shader '%s': %w", prog.Name, err)
	}

	// Editors often save by replacing the file, which drops watches on the file itself, so we watch its folder
	dir := filepath.Dir(path)
	if _, ok := w.watchedDirs[dir]; !ok {

		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch shader folder '%s': %w", dir, err)
		}

		w.watchedDirs[dir] = struct{}{}
	}

	w.mu.Lock()
	w.watched[path] = struct{}{}
	w.mu.Unlock()

	w.programs[path] = append(w.programs[path], prog)
	return nil
}

func (w *Watcher) run() {

	defer w.wg.Done()

	for {
		select {
		case e, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			path := filepath.Clean(e.Name)

			w.mu.Lock()
			if _, ok := w.watched[path]; ok {
				w.pending[path] = struct{}{}
			}
			w.mu.Unlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			logging.ErrLog.Errorf("shader watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// TakeChanged returns the watched files that changed since the last call, sorted
func (w *Watcher) TakeChanged() []string {

	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}

	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	clear(w.pending)

	sort.Strings(changed)
	return changed
}

// Poll recompiles the programs of every changed file and returns how many were replaced.
// A program that fails to compile keeps running its previous version.
func (w *Watcher) Poll() int {

	reloaded := 0
	for _, path := range w.TakeChanged() {

		for _, prog := range w.programs[path] {

			newProg, err := LoadAndCompileCombinedShader(prog.Name)
			if err != nil {
				logging.ErrLog.Errorf("failed to reload shader, keeping the old one. Err: %v", err)
				continue
			}

			prog.Delete()
			*prog = newProg
			reloaded++

			logging.InfoLog.Infof("reloaded shader '%s' (id=%d)", prog.Name, prog.Id)
		}
	}

	return reloaded
}

// Close stops watching. Calling it again returns the result of the first call.
func (w *Watcher) Close() error {

	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fsWatcher.Close()
		w.wg.Wait()
	})

	return w.closeErr
}
