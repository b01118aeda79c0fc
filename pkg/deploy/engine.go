package deploy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Options tune an Engine.
type Options struct {
	// Workers bounds concurrent scans and group copies
	Workers int

	// Skip lists keys whose deployed triplets are numbered from 1
	Skip map[types.GroupKey]bool
}

// ModFailure describes a mod left out of a deployment.
type ModFailure struct {
	ModID string
	Name  string
	Code  errors.ErrorCode
	Err   error
}

func (f ModFailure) Error() string {
	name := f.Name
	if name == "" {
		name = f.ModID
	}
	return fmt.Sprintf("%s: %v", name, f.Err)
}

// Plan is what a deployment of an order would write.
type Plan struct {
	// Deployed lists the mods that contributed, in deployment order
	Deployed []types.Mod

	// Excluded lists mods that could not be resolved or scanned
	Excluded []ModFailure

	// Groups holds the merged and renumbered triplets
	Groups types.GroupSet

	// Overrides counts triplets replaced by a later mod
	Overrides int

	// Files lists every destination path, in record order
	Files []string
}

// Result describes a completed deployment.
type Result struct {
	Purged    *PurgeResult
	Deployed  []types.Mod
	Excluded  []ModFailure
	Groups    int
	Triplets  int
	Overrides int
	Record    *datastore.Record
}

// Engine runs deployments and purges. Calls are serialized; an Engine is
// safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	fs       types.FS
	store    *datastore.Store
	resolver *Resolver
	writer   *Writer
	dataDir  string
	workers  int
	skip     map[types.GroupKey]bool
}

// NewEngine creates an Engine deploying into dataDir, the game's data
// directory.
func NewEngine(fs types.FS, mods ModSource, store *datastore.Store, dataDir string, opts Options) *Engine {
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Engine{
		fs:       fs,
		store:    store,
		resolver: NewResolver(fs, mods),
		writer:   NewWriter(fs, workers),
		dataDir:  dataDir,
		workers:  workers,
		skip:     opts.Skip,
	}
}

// Deploy purges the previous deployment and deploys the mods in order, the
// last mod having the highest priority. With an empty order only the purge
// runs.
//
// Mods that cannot be resolved or scanned are left out and reported in
// Result.Excluded; the rest are still deployed and recorded, and a
// MODS_EXCLUDED error is returned alongside the result. A write failure
// leaves no record.
func (e *Engine) Deploy(ctx context.Context, order []string) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger := logging.GetLogger("deploy.engine")
	done := logging.LogOperationStart(logger, "deploy")
	defer done()

	if e.dataDir == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "game data directory is not set")
	}

	logger.Info().Msg("Purging previous deployment")
	purged, err := Purge(e.fs, e.store)
	if err != nil {
		return nil, err
	}
	result := &Result{Purged: purged}

	if len(order) == 0 {
		logger.Info().Msg("No mods to deploy")
		return result, nil
	}

	logger.Info().Int("mods", len(order)).Msg("Starting deployment")
	plan, err := e.plan(ctx, order)
	if err != nil {
		return result, err
	}
	result.Deployed = plan.Deployed
	result.Excluded = plan.Excluded
	result.Groups = len(plan.Groups)
	result.Triplets = plan.Groups.TripletCount()
	result.Overrides = plan.Overrides

	if len(plan.Groups) > 0 {
		record, err := e.writer.Write(ctx, e.dataDir, plan.Groups)
		if err != nil {
			return result, err
		}
		if err := e.store.Save(record); err != nil {
			e.discard(record)
			return result, err
		}
		result.Record = record
	} else {
		logger.Info().Msg("Enabled mods contain no patch files")
	}

	logger.Info().
		Int("deployed", len(result.Deployed)).
		Int("excluded", len(result.Excluded)).
		Int("files", result.Record.Len()).
		Msg("Deployment complete")

	return result, excludedError(result.Excluded)
}

// Plan resolves, scans, merges and renumbers without touching the
// filesystem.
func (e *Engine) Plan(ctx context.Context, order []string) (*Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dataDir == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "game data directory is not set")
	}

	plan, err := e.plan(ctx, order)
	if err != nil {
		return nil, err
	}
	return plan, excludedError(plan.Excluded)
}

// Purge removes the files of the previous deployment.
func (e *Engine) Purge(ctx context.Context) (*PurgeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCanceled, "purge canceled")
	}
	return Purge(e.fs, e.store)
}

// HardPurge removes the record and every patch file in the data directory.
func (e *Engine) HardPurge(ctx context.Context) (*PurgeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCanceled, "hard purge canceled")
	}
	return HardPurge(e.fs, e.store, e.dataDir)
}

// contribution is the scan of one resolved mod: one GroupSet per directory,
// in merge order.
type contribution struct {
	mod    types.Mod
	groups []types.GroupSet
	failed *ModFailure
}

func (e *Engine) plan(ctx context.Context, order []string) (*Plan, error) {
	logger := logging.GetLogger("deploy.engine")

	contributions := make([]contribution, len(order))
	dirs := make([][]string, len(order))
	for i, id := range order {
		mod, err := e.resolver.Lookup(id)
		if err == nil {
			dirs[i], err = e.resolver.Resolve(mod)
		}
		contributions[i].mod = mod
		if err != nil {
			contributions[i].failed = newModFailure(id, mod.Name, err)
			if errors.IsModResolution(err) {
				logger.Warn().Err(err).Str("mod", id).Msg("Skipping mod")
			} else {
				logger.Error().Err(err).Str("mod", id).Msg("Skipping mod after unexpected error")
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range contributions {
		if contributions[i].failed != nil {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := &contributions[i]
			for _, dir := range dirs[i] {
				groups, err := Scan(e.fs, dir)
				if err != nil {
					c.failed = newModFailure(c.mod.ID, c.mod.Name, err)
					c.groups = nil
					return nil
				}
				c.groups = append(c.groups, groups)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCanceled, "deployment canceled")
	}

	plan := &Plan{}
	merger := NewMerger()
	for _, c := range contributions {
		if c.failed != nil {
			plan.Excluded = append(plan.Excluded, *c.failed)
			continue
		}
		logger.Info().Str("mod", c.mod.Name).Int("dirs", len(c.groups)).Msg("Merging mod")
		for _, groups := range c.groups {
			merger.Add(c.mod.ID, groups)
		}
		plan.Deployed = append(plan.Deployed, c.mod)
	}

	plan.Groups = RenumberAll(merger.Result(), e.skip)
	plan.Overrides = merger.Overrides()
	plan.Files = destinationFiles(e.dataDir, plan.Groups)

	logger.Info().
		Int("groups", len(plan.Groups)).
		Int("triplets", plan.Groups.TripletCount()).
		Int("overrides", plan.Overrides).
		Msg("Merged mods")
	return plan, nil
}

// discard removes files written by a deployment whose record could not be
// saved.
func (e *Engine) discard(record *datastore.Record) {
	logger := logging.GetLogger("deploy.engine")
	for _, p := range record.Paths {
		if err := e.fs.Remove(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Failed to remove unrecorded file")
		}
	}
}

func destinationFiles(dest string, groups types.GroupSet) []string {
	var files []string
	for _, key := range groups.Keys() {
		for _, t := range groups[key] {
			for _, slot := range types.Slots {
				name := types.Artifact{Key: key, Index: t.Index, Slot: slot}.FileName()
				files = append(files, filepath.Join(dest, name))
			}
		}
	}
	return files
}

func newModFailure(id, name string, err error) *ModFailure {
	return &ModFailure{ModID: id, Name: name, Code: errors.GetErrorCode(err), Err: err}
}

func excludedError(excluded []ModFailure) error {
	if len(excluded) == 0 {
		return nil
	}
	names := make([]string, len(excluded))
	for i, f := range excluded {
		names[i] = f.Error()
	}
	return errors.Newf(errors.ErrModsExcluded, "%d mods were not deployed: %s", len(excluded), strings.Join(names, "; ")).
		WithDetail("excluded", excluded)
}
