// Package library maintains the set of loaded javadoc archives and
// answers class name queries across all of them.
package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"jdex/internal/javadoc"
)

// loadWorkers bounds how many archives are opened at once during a
// directory load.
const loadWorkers = 4

type archiveEntry struct {
	archive *javadoc.Archive
	source  string // path the archive was registered under, pre-resolution
	names   []javadoc.ClassName
}

// Library is an ordered collection of archives plus an index of every
// class they document. Lookups probe archives in the order they were
// added; the first archive to declare a name keeps it. All methods are
// safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	entries []*archiveEntry
	byPath  map[string]int      // resolved archive path -> entries index
	fqns    map[string]string   // lowercased qualified name -> canonical form
	simple  map[string][]string // lowercased simple name -> sorted qualified names
}

// New returns an empty library.
func New() *Library {
	return &Library{
		byPath: make(map[string]int),
		fqns:   make(map[string]string),
		simple: make(map[string][]string),
	}
}

func loadEntry(path string) (*archiveEntry, error) {
	a, err := javadoc.OpenArchive(path)
	if err != nil {
		return nil, err
	}
	names, err := a.ClassNames()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &archiveEntry{archive: a, source: abs, names: names}, nil
}

// Add loads one archive and indexes its classes. Adding a path the
// library already holds replaces the earlier snapshot in place,
// keeping its probe position.
func (l *Library) Add(path string) error {
	e, err := loadEntry(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i, ok := l.byPath[e.archive.Path()]; ok {
		l.entries[i] = e
	} else {
		l.entries = append(l.entries, e)
	}
	l.reindex()
	return nil
}

// Remove drops the archive registered under path. It accepts either
// the path the archive was added with or its resolved form, so a
// deleted file can still be dropped. It reports whether anything was
// removed.
func (l *Library) Remove(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.source != abs && e.archive.Path() != abs {
			continue
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		l.reindex()
		return true
	}
	return false
}

// LoadDirectory opens every archive in dir in parallel and installs
// them in file name order. A damaged archive is logged and skipped so
// it cannot take the rest of the set down. It returns how many
// archives were loaded.
func (l *Library) LoadDirectory(dir string) (int, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read archive directory: %w", err)
	}

	var paths []string
	for _, d := range dirents {
		if d.IsDir() || !isArchive(d.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, d.Name()))
	}
	sort.Strings(paths)

	loaded := make([]*archiveEntry, len(paths))
	var g errgroup.Group
	g.SetLimit(loadWorkers)
	for i, path := range paths {
		g.Go(func() error {
			e, err := loadEntry(path)
			if err != nil {
				slog.Warn("skipping archive", "path", path, "error", err)
				return nil
			}
			loaded[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	count := 0
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range loaded {
		if e == nil {
			continue
		}
		count++
		if i, ok := l.byPath[e.archive.Path()]; ok {
			l.entries[i] = e
		} else {
			l.entries = append(l.entries, e)
			l.byPath[e.archive.Path()] = len(l.entries) - 1
		}
	}
	l.reindex()
	return count, nil
}

// reindex rebuilds the name indexes from the entries. Callers hold the
// write lock.
func (l *Library) reindex() {
	l.byPath = make(map[string]int, len(l.entries))
	l.fqns = make(map[string]string)
	l.simple = make(map[string][]string)

	for i, e := range l.entries {
		l.byPath[e.archive.Path()] = i
		for _, n := range e.names {
			fqn := n.FullyQualified()
			key := strings.ToLower(fqn)
			if _, ok := l.fqns[key]; ok {
				continue
			}
			l.fqns[key] = fqn
			sk := strings.ToLower(n.Simple)
			l.simple[sk] = append(l.simple[sk], fqn)
		}
	}
	for _, fqns := range l.simple {
		sort.Strings(fqns)
	}
}

// Search resolves a query against the index, ignoring case. A query
// that is a known fully-qualified name returns exactly that name;
// anything else is treated as a simple class name and every qualified
// name carrying it is returned. No match yields an empty result, which
// is not an error.
func (l *Library) Search(query string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if fqn, ok := l.fqns[strings.ToLower(query)]; ok {
		return []string{fqn}
	}
	matches := l.simple[strings.ToLower(query)]
	out := make([]string, len(matches))
	copy(out, matches)
	return out
}

// GetClassInfo loads the documentation for an exact fully-qualified
// name, probing archives in insertion order and returning the first
// hit. Nil with a nil error means no archive documents the class.
func (l *Library) GetClassInfo(fqn string) (*javadoc.ClassInfo, error) {
	l.mu.RLock()
	archives := make([]*javadoc.Archive, len(l.entries))
	for i, e := range l.entries {
		archives[i] = e.archive
	}
	l.mu.RUnlock()

	for _, a := range archives {
		info, err := a.ClassInfo(fqn)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, nil
}

// Status describes one loaded archive.
type Status struct {
	Path       string
	Name       string
	Version    string
	ProjectURL string
	Classes    int
}

// Snapshot reports every loaded archive in probe order.
func (l *Library) Snapshot() []Status {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Status, 0, len(l.entries))
	for _, e := range l.entries {
		meta := e.archive.Metadata()
		out = append(out, Status{
			Path:       e.archive.Path(),
			Name:       DisplayName(e.archive),
			Version:    meta.Version,
			ProjectURL: meta.ProjectURL,
			Classes:    len(e.names),
		})
	}
	return out
}

// Counts reports the number of loaded archives and of distinct
// indexed class names.
func (l *Library) Counts() (archives, classes int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries), len(l.fqns)
}

// DisplayName returns the archive's declared name, falling back to its
// file name without the extension.
func DisplayName(a *javadoc.Archive) string {
	if n := a.Metadata().Name; n != "" {
		return n
	}
	base := filepath.Base(a.Path())
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isArchive reports whether the file name looks like a javadoc
// archive.
func isArchive(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip", ".jar":
		return true
	}
	return false
}
