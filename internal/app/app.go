// Package app wires the extraction pipeline to its collaborators: the
// transport, the disk cache, the renderers, and the CLI-facing
// operations (list, generate, generate-week, generate-all, cache
// management).
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gensec-labs/labgen/internal/assemble"
	"github.com/gensec-labs/labgen/internal/cache"
	"github.com/gensec-labs/labgen/internal/fetch"
	"github.com/gensec-labs/labgen/internal/htmltree"
	"github.com/gensec-labs/labgen/internal/index"
	"github.com/gensec-labs/labgen/internal/model"
	"github.com/gensec-labs/labgen/internal/pipeline"
	"github.com/gensec-labs/labgen/internal/render"
)

const (
	indexCacheKey = "lab-index"
	labKeyPrefix  = "lab:"
	pageKeyPrefix = "page:"
)

// App holds the wired collaborators for one run.
type App struct {
	cfg    Config
	store  *cache.Store
	client *fetch.Client
	parser htmltree.Parser
	facade *pipeline.Facade
}

// New wires an App from resolved configuration.
func New(cfg Config) *App {
	a := &App{
		cfg:   cfg,
		store: &cache.Store{Dir: cfg.CacheDir, TTL: cfg.CacheTTL},
		client: &fetch.Client{
			MaxAttempts:       cfg.MaxAttempts,
			PerRequestTimeout: cfg.Timeout,
			MaxConcurrent:     cfg.Workers,
		},
	}
	if cfg.UseQueryParser {
		a.parser = htmltree.QueryParser{}
	} else {
		a.parser = htmltree.TreeParser{}
	}
	a.facade = &pipeline.Facade{
		Assembler:  &assemble.Assembler{Parser: a.parser, MaxSections: cfg.SectionCap},
		FetcherFor: a.sectionFetcher,
	}
	return a
}

// Index returns the lab index, served from cache when fresh. A root page
// yielding zero cards is fatal and is never cached, so a transient bad
// page cannot poison later runs.
func (a *App) Index(ctx context.Context) (model.LabIndex, error) {
	if !a.cfg.NoCache {
		if b, err := a.store.Get(ctx, indexCacheKey); err == nil {
			var ix model.LabIndex
			if err := json.Unmarshal(b, &ix); err == nil && len(ix.Labs) > 0 {
				log.Debug().Int("labs", len(ix.Labs)).Msg("lab index served from cache")
				return ix, nil
			}
		}
	}

	body, err := a.client.Get(ctx, a.cfg.BaseURL)
	if err != nil {
		return model.LabIndex{}, fmt.Errorf("fetch course index: %w", err)
	}
	root, perr := a.parser.Parse(body)
	if perr != nil {
		log.Warn().Err(perr).Msg("course index normalization reported a diagnostic")
	}
	labs, err := index.Extract(root, a.cfg.BaseURL)
	if err != nil {
		return model.LabIndex{}, err
	}
	ix := model.LabIndex{Labs: labs, FetchedAt: time.Now().UTC()}
	if b, err := json.Marshal(ix); err == nil {
		if err := a.store.Put(ctx, indexCacheKey, b); err != nil {
			log.Warn().Err(err).Msg("caching lab index failed")
		}
	}
	log.Info().Int("labs", len(labs)).Msg("lab index fetched")
	return ix, nil
}

// BuildLab resolves reference and returns the fully assembled lab,
// reusing a cached assembly when available.
func (a *App) BuildLab(ctx context.Context, reference string) (*model.Lab, error) {
	ix, err := a.Index(ctx)
	if err != nil {
		return nil, err
	}
	return a.buildLab(ctx, reference, ix)
}

func (a *App) buildLab(ctx context.Context, reference string, ix model.LabIndex) (*model.Lab, error) {
	summary, err := pipeline.Resolve(reference, ix)
	if err != nil {
		return nil, err
	}
	if !a.cfg.NoCache && summary.ID != "" {
		if b, err := a.store.Get(ctx, labKeyPrefix+summary.ID); err == nil {
			var lab model.Lab
			if err := json.Unmarshal(b, &lab); err == nil {
				log.Debug().Str("lab", lab.ID).Msg("assembled lab served from cache")
				return &lab, nil
			}
		}
	}

	lab, err := a.facade.BuildLab(ctx, reference, ix)
	if err != nil {
		return nil, err
	}
	if lab.ID != "" {
		if b, err := json.Marshal(lab); err == nil {
			if err := a.store.Put(ctx, labKeyPrefix+lab.ID, b); err != nil {
				log.Warn().Err(err).Str("lab", lab.ID).Msg("caching assembled lab failed")
			}
		}
	}
	return lab, nil
}

// sectionFetcher satisfies the assembler's probe contract against a site
// that serves every section in one page: the page is fetched once (via
// the cache), split into step fragments, and served per index.
func (a *App) sectionFetcher(summary model.LabSummary) assemble.SectionFetcher {
	var once sync.Once
	var steps [][]byte
	var loadErr error
	return func(ctx context.Context, i int) ([]byte, error) {
		once.Do(func() { steps, loadErr = a.loadSteps(ctx, summary) })
		if loadErr != nil {
			return nil, loadErr
		}
		if i >= len(steps) {
			return nil, assemble.ErrSectionNotFound
		}
		return steps[i], nil
	}
}

func (a *App) loadSteps(ctx context.Context, summary model.LabSummary) ([][]byte, error) {
	key := pageKeyPrefix + summary.URL
	var page []byte
	if !a.cfg.NoCache {
		if b, err := a.store.Get(ctx, key); err == nil {
			page = b
		}
	}
	if page == nil {
		var err error
		page, err = a.client.Get(ctx, summary.URL)
		if err != nil {
			return nil, err
		}
		if err := a.store.Put(ctx, key, page); err != nil {
			log.Warn().Err(err).Str("lab", summary.ID).Msg("caching lab page failed")
		}
	}

	steps, err := splitSteps(page)
	if err != nil {
		log.Warn().Err(err).Str("lab", summary.ID).Msg("splitting lab page failed")
	}
	if len(steps) == 0 && len(bytes.TrimSpace(page)) > 0 {
		// Older lab pages carry a single unlabeled content block.
		steps = [][]byte{page}
	}
	return steps, nil
}

// Result reports one generated document.
type Result struct {
	Lab  *model.Lab
	Path string
}

// Generate builds the referenced lab and writes its document. An empty
// outPath derives `<number>_<safe-title>.<ext>` under the output dir.
func (a *App) Generate(ctx context.Context, reference, outPath string) (Result, error) {
	lab, err := a.BuildLab(ctx, reference)
	if err != nil {
		return Result{}, err
	}
	return a.writeDocument(lab, outPath)
}

func (a *App) writeDocument(lab *model.Lab, outPath string) (Result, error) {
	renderer, err := render.ForFormat(a.cfg.Format)
	if err != nil {
		return Result{}, err
	}
	if outPath == "" {
		outPath = filepath.Join(a.cfg.OutputDir, outputName(lab, renderer.Extension()))
	}
	doc, err := renderer.Render(lab)
	if err != nil {
		return Result{}, fmt.Errorf("render %s: %w", lab.ID, err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, err
		}
	}
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return Result{}, err
	}
	log.Info().Str("lab", lab.ID).Str("path", outPath).
		Int("sections", len(lab.Sections)).Int("questions", lab.TotalQuestions()).
		Msg("template written")
	return Result{Lab: lab, Path: outPath}, nil
}

var unsafeNameRe = regexp.MustCompile(`[^\w\s-]`)

func outputName(lab *model.Lab, ext string) string {
	title := unsafeNameRe.ReplaceAllString(lab.Title, "")
	title = strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if title == "" {
		title = lab.ID
	}
	if lab.Number == "" {
		return title + ext
	}
	return lab.Number + "_" + title + ext
}

// GenerateWeek generates every lab whose number starts with "<week>.".
func (a *App) GenerateWeek(ctx context.Context, week string) ([]Result, []error, error) {
	ix, err := a.Index(ctx)
	if err != nil {
		return nil, nil, err
	}
	var refs []string
	for _, s := range ix.Labs {
		if strings.HasPrefix(s.Number, week+".") {
			refs = append(refs, s.ID)
		}
	}
	if len(refs) == 0 {
		return nil, nil, fmt.Errorf("no labs found for week %s", week)
	}
	results, errs := a.generateMany(ctx, ix, refs)
	return results, errs, nil
}

// GenerateAll generates every lab in the index.
func (a *App) GenerateAll(ctx context.Context) ([]Result, []error, error) {
	ix, err := a.Index(ctx)
	if err != nil {
		return nil, nil, err
	}
	refs := make([]string, 0, len(ix.Labs))
	for _, s := range ix.SortedByNumber() {
		refs = append(refs, s.ID)
	}
	if len(refs) == 0 {
		return nil, nil, errors.New("lab index is empty")
	}
	results, errs := a.generateMany(ctx, ix, refs)
	return results, errs, nil
}

// generateMany fans out across labs with a bounded worker pool. Labs
// share no mutable state, so only the pool size limits parallelism;
// within each lab section discovery stays sequential.
func (a *App) generateMany(ctx context.Context, ix model.LabIndex, refs []string) ([]Result, []error) {
	workers := a.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	results := make([]Result, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			lab, err := a.buildLab(ctx, ref, ix)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", ref, err)
				return
			}
			results[i], errs[i] = a.writeDocument(lab, "")
		}(i, ref)
	}
	wg.Wait()
	return results, errs
}

// CacheInfo reports the cache state for the cache-info command.
func (a *App) CacheInfo() (cache.Info, error) {
	return a.store.Info()
}

// ClearCache drops every cached entry.
func (a *App) ClearCache() error {
	return a.store.Clear()
}
