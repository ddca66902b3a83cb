// Package seed loads fixture data from JSON files into the store. It is
// used by the seed command to populate a database for demos and local
// development.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ecotrace/wastewatch/internal/progress"
	"github.com/ecotrace/wastewatch/internal/store"
)

// Fixture is the shape of one seed file. Every section is optional.
// Records are inserted in dependency order: facilities and waste types
// first, then shipments, then inspections and contaminants.
type Fixture struct {
	Facilities   []store.Facility    `json:"facilities"`
	WasteTypes   []store.WasteType   `json:"waste_types"`
	Shipments    []store.Shipment    `json:"shipments"`
	Inspections  []store.Inspection  `json:"inspections"`
	Contaminants []store.Contaminant `json:"contaminants"`
}

// Summary counts what a load inserted.
type Summary struct {
	Files        int
	Facilities   int
	WasteTypes   int
	Shipments    int
	Inspections  int
	Contaminants int
}

// Total returns the number of records inserted across all sections.
func (s Summary) Total() int {
	return s.Facilities + s.WasteTypes + s.Shipments + s.Inspections + s.Contaminants
}

// Loader inserts fixture records into a store, reporting progress per file.
type Loader struct {
	store    *store.Store
	reporter progress.Reporter
}

// New creates a loader. A nil reporter disables progress output.
func New(st *store.Store, reporter progress.Reporter) *Loader {
	return &Loader{store: st, reporter: reporter}
}

// DefaultPattern matches fixture files recursively under the fixture
// directory.
const DefaultPattern = "**/*.json"

// LoadDir loads every file under dir matching pattern (doublestar
// syntax, relative to dir). An empty pattern means DefaultPattern.
func (l *Loader) LoadDir(ctx context.Context, dir, pattern string) (*Summary, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	pattern = filepath.Join(dir, pattern)
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no fixture files under %s", dir)
	}

	if l.reporter != nil {
		l.reporter.Start(len(files))
		defer l.reporter.Finish()
	}

	summary := &Summary{}
	for i, path := range files {
		if l.reporter != nil {
			l.reporter.Update(i+1, filepath.Base(path))
		}
		if err := l.LoadFile(ctx, path, summary); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// LoadFile loads a single fixture file, accumulating counts into summary.
func (l *Loader) LoadFile(ctx context.Context, path string, summary *Summary) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := l.insert(ctx, fx, summary); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	summary.Files++
	return nil
}

func (l *Loader) insert(ctx context.Context, fx Fixture, summary *Summary) error {
	for _, f := range fx.Facilities {
		if _, err := l.store.CreateFacility(ctx, f); err != nil {
			return err
		}
		summary.Facilities++
	}
	for _, wt := range fx.WasteTypes {
		if _, err := l.store.CreateWasteType(ctx, wt); err != nil {
			return err
		}
		summary.WasteTypes++
	}
	for _, sh := range fx.Shipments {
		if _, err := l.store.CreateShipment(ctx, sh); err != nil {
			return err
		}
		summary.Shipments++
	}
	for _, in := range fx.Inspections {
		if _, err := l.store.CreateInspection(ctx, in); err != nil {
			return err
		}
		summary.Inspections++
	}
	for _, c := range fx.Contaminants {
		if _, err := l.store.CreateContaminant(ctx, c); err != nil {
			return err
		}
		summary.Contaminants++
	}
	return nil
}
