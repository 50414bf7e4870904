// Package indexer orchestrates one indexing run: it walks a project root,
// loads and parses each referenced file once, builds the dependency forest
// and assembles the read-only Project aggregate that the output formatter
// consumes.
package indexer

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/texkit/latidx/internal/deptree"
	"github.com/texkit/latidx/internal/latex"
	"github.com/texkit/latidx/internal/resolver"
)

// Config holds indexer configuration.
type Config struct {
	// Root is the project root directory to index.
	Root string
	// Entries are the entry files to expand, in order. When empty, every
	// .tex file under the root becomes an entry, sorted by path.
	Entries []string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Indexer builds a Project from a root path and entry files. The path index
// and file cache it owns live exactly as long as one build.
type Indexer struct {
	logger  *slog.Logger
	index   *resolver.Index
	entries []string
	files   map[string]*latex.File
}

// New validates the root and builds the path index. A missing root or one
// that is not a directory fails here; nothing partial is returned.
func New(cfg Config) (*Indexer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index, err := resolver.New(cfg.Root)
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(cfg.Entries))
	for _, e := range cfg.Entries {
		abs, err := filepath.Abs(e)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e, err)
		}
		entries = append(entries, abs)
	}
	if len(entries) == 0 {
		for _, path := range index.Candidates() {
			if strings.EqualFold(filepath.Ext(path), ".tex") {
				entries = append(entries, path)
			}
		}
	}

	return &Indexer{
		logger:  logger,
		index:   index,
		entries: entries,
		files:   make(map[string]*latex.File),
	}, nil
}

// File returns the parsed file for a canonical path, loading it on first
// reference. Later references reuse the cached parse, so each distinct file
// is read from disk at most once per build.
func (ix *Indexer) File(path string) (*latex.File, error) {
	if f, ok := ix.files[path]; ok {
		return f, nil
	}
	f, err := latex.Load(path)
	if err != nil {
		return nil, err
	}
	ix.files[path] = f
	ix.logger.Debug("parsed file",
		"path", path,
		"usepackages", len(f.Packages),
		"newcommands", len(f.Commands))
	return f, nil
}

// Index runs the build. Fatal conditions (unreadable or undecodable entry or
// dependency file) abort the run with no partial project; unresolved package
// names become orphans in the result instead.
func (ix *Indexer) Index() (*Project, error) {
	start := time.Now()

	if len(ix.entries) == 0 {
		return nil, fmt.Errorf("no entry files found under %s", ix.index.Root())
	}

	ix.logger.Info("indexing project",
		"root", ix.index.Root(),
		"entries", len(ix.entries))

	entryFiles := make([]*latex.File, 0, len(ix.entries))
	for _, path := range ix.entries {
		f, err := ix.File(path)
		if err != nil {
			return nil, fmt.Errorf("entry file: %w", err)
		}
		entryFiles = append(entryFiles, f)
	}

	builder := deptree.NewBuilder(ix, ix.index)
	forest, unresolved, err := builder.Build(entryFiles)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Root:    ix.index.Root(),
		Entries: entryFiles,
		Forest:  forest,
		files:   ix.files,
		orphans: make(map[string]*Orphan),
	}

	for _, ref := range unresolved {
		o := p.orphans[ref.Name]
		if o == nil {
			o = &Orphan{Name: ref.Name}
			p.orphans[ref.Name] = o
		}
		o.Refs = append(o.Refs, ref)
	}

	// Flat global collections, ordered by file path then appearance.
	for _, f := range p.Files() {
		p.Packages = append(p.Packages, f.Packages...)
		p.Commands = append(p.Commands, f.Commands...)
	}

	p.Stats = Stats{
		Files:       len(p.files),
		PackageRefs: len(p.Packages),
		MacroDefs:   len(p.Commands),
		Orphans:     len(p.orphans),
		Duration:    time.Since(start),
	}

	ix.logger.Info("indexing completed",
		"files", p.Stats.Files,
		"usepackages", p.Stats.PackageRefs,
		"newcommands", p.Stats.MacroDefs,
		"orphans", p.Stats.Orphans,
		"duration_ms", p.Stats.Duration.Milliseconds())

	return p, nil
}

// Project is the aggregate result of one indexing run. It is read-only after
// Index returns and is discarded once rendered.
type Project struct {
	// Root is the canonical project root.
	Root string
	// Entries are the entry files in traversal order.
	Entries []*latex.File
	// Forest holds one dependency tree per entry.
	Forest []*deptree.Node
	// Packages is every \usepackage reference across all parsed files,
	// ordered by file path then appearance.
	Packages []*latex.Package
	// Commands is every macro definition across all parsed files,
	// ordered by file path then appearance.
	Commands []*latex.Command
	// Stats summarizes the run.
	Stats Stats

	files   map[string]*latex.File
	orphans map[string]*Orphan
}

// Orphan is a package name referenced somewhere in the project that resolved
// to no file on disk. Its occurrence list is never empty.
type Orphan struct {
	// Name is the unresolved package name.
	Name string
	// Refs are the references to it, in encounter order.
	Refs []*latex.Package
}

// Stats summarizes one indexing run.
type Stats struct {
	Files       int
	PackageRefs int
	MacroDefs   int
	Orphans     int
	Duration    time.Duration
}

// Files returns every distinct parsed file, sorted by path.
func (p *Project) Files() []*latex.File {
	files := make([]*latex.File, 0, len(p.files))
	for _, f := range p.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// File looks up a parsed file by canonical path.
func (p *Project) File(path string) (*latex.File, bool) {
	f, ok := p.files[path]
	return f, ok
}

// Orphans returns the orphan table sorted by package name.
func (p *Project) Orphans() []*Orphan {
	orphans := make([]*Orphan, 0, len(p.orphans))
	for _, o := range p.orphans {
		orphans = append(orphans, o)
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Name < orphans[j].Name })
	return orphans
}

// Orphan looks up an orphan by package name.
func (p *Project) Orphan(name string) (*Orphan, bool) {
	o, ok := p.orphans[name]
	return o, ok
}
