package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/metrics"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/locations"
	"github.com/lacs/lacsapi/internal/server/sepomex"
)

const (
	DefaultBatchSize  = 1000
	DefaultStateLimit = 50
	MaxStateLimit     = 100
	DefaultSampleSize = 10
	MaxSampleSize     = 100
	DefaultXMLSample  = 5
)

// Load states.
const (
	StateEmpty   = "empty"
	StateLoading = "loading"
	StateLoaded  = "loaded"
)

// Load report statuses.
const (
	LoadStatusStarted       = "started"
	LoadStatusLoaded        = "loaded"
	LoadStatusAlreadyLoaded = "already_loaded"
)

// LocationStatus reports the catalogue state: empty, loading or loaded.
type LocationStatus struct {
	Status               string `json:"status"`
	Message              string `json:"message"`
	Loaded               bool   `json:"loaded"`
	TotalCodigosPostales int64  `json:"total_codigos_postales"`
	TotalAsentamientos   int64  `json:"total_asentamientos"`
}

// LoadReport describes a finished, skipped or started load.
type LoadReport struct {
	Status               string                  `json:"status"`
	Message              string                  `json:"message"`
	Source               string                  `json:"source,omitempty"`
	TotalCodigosPostales int64                   `json:"total_codigos_postales"`
	TotalAsentamientos   int64                   `json:"total_asentamientos"`
	TotalRecords         int                     `json:"total_records,omitempty"`
	SkippedRecords       int                     `json:"skipped_records,omitempty"`
	FailedItems          int                     `json:"failed_items,omitempty"`
	Batches              []locations.BatchResult `json:"batches,omitempty"`
}

type LocationSample struct {
	Samples    []models.Location `json:"sample_codigos_postales"`
	TotalCount int64             `json:"total_count"`
}

type XMLSample struct {
	Source string `json:"source"`
	*sepomex.SampleResult
}

// LocationService imports the SEPOMEX catalogue and answers lookups on it.
// At most one load runs at a time.
type LocationService struct {
	repo      locations.Repository
	source    sepomex.Source
	batchSize int
	metrics   *metrics.Collector
	logger    logging.Logger

	mu      sync.Mutex
	loading bool
	wg      sync.WaitGroup
}

func NewLocationService(repo locations.Repository, source sepomex.Source, batchSize int, mc *metrics.Collector, logger logging.Logger) *LocationService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &LocationService{
		repo:      repo,
		source:    source,
		batchSize: batchSize,
		metrics:   mc,
		logger:    logger.With("module", "locations"),
	}
}

func (s *LocationService) Status(ctx context.Context) (*LocationStatus, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	st := &LocationStatus{
		Status:               StateEmpty,
		Message:              "no locations loaded",
		Loaded:               n > 0,
		TotalCodigosPostales: n,
	}
	if n > 0 {
		st.Status = StateLoaded
		st.Message = fmt.Sprintf("%d postal codes loaded", n)
		st.TotalAsentamientos = s.countSettlements(ctx)
	}
	if s.isLoading() {
		st.Status = StateLoading
		st.Message = "location load in progress"
	}
	return st, nil
}

// Load starts an import in the background and returns at once. The import
// outlives ctx cancellation. A load already running yields
// common.ErrLoadInProgress.
func (s *LocationService) Load(ctx context.Context, force bool) (*LoadReport, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	if report, done, err := s.skipIfLoaded(ctx, force); done || err != nil {
		s.end()
		return report, err
	}

	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.end()
		if _, err := s.run(bg); err != nil {
			s.logger.Error(bg, "background location load failed", "error", err)
		}
	}()

	return &LoadReport{Status: LoadStatusStarted, Message: "location load started"}, nil
}

// LoadSync imports inline and returns the full report.
func (s *LocationService) LoadSync(ctx context.Context, force bool) (*LoadReport, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if report, done, err := s.skipIfLoaded(ctx, force); done || err != nil {
		return report, err
	}
	return s.run(ctx)
}

// Wait blocks until a background load, if any, finishes.
func (s *LocationService) Wait() {
	s.wg.Wait()
}

func (s *LocationService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return common.ErrLoadInProgress
	}
	s.loading = true
	return nil
}

func (s *LocationService) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *LocationService) isLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *LocationService) skipIfLoaded(ctx context.Context, force bool) (*LoadReport, bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if n == 0 || force {
		return nil, false, nil
	}
	s.metrics.RecordImport(metrics.OutcomeSkipped, n, 0)
	return &LoadReport{
		Status:               LoadStatusAlreadyLoaded,
		Message:              "locations already loaded, use force_reload=true to reload",
		TotalCodigosPostales: n,
		TotalAsentamientos:   s.countSettlements(ctx),
	}, true, nil
}

func (s *LocationService) run(ctx context.Context) (*LoadReport, error) {
	report, err := s.importAll(ctx)
	if err != nil {
		s.metrics.RecordImport(metrics.OutcomeFailure, 0, 0)
		return nil, err
	}
	s.metrics.RecordImport(metrics.OutcomeSuccess, report.TotalCodigosPostales, report.FailedItems)
	return report, nil
}

func (s *LocationService) importAll(ctx context.Context) (*LoadReport, error) {
	rc, where, err := s.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	s.logger.Info(ctx, "parsing location source", "source", where)
	parsed, err := sepomex.Parse(rc)
	if err != nil {
		return nil, err
	}
	if len(parsed.Locations) == 0 {
		return nil, fmt.Errorf("%w: no valid records in %s", common.ErrImport, where)
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("%w: clear locations: %v", common.ErrImport, err)
	}

	report := &LoadReport{
		Status:         LoadStatusLoaded,
		Source:         where,
		TotalRecords:   parsed.TotalRecords,
		SkippedRecords: parsed.SkippedRecords,
	}

	var inserted int64
	for start := 0; start < len(parsed.Locations); start += s.batchSize {
		end := min(start+s.batchSize, len(parsed.Locations))
		res, err := s.repo.InsertBatch(ctx, parsed.Locations[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: batch at %d: %v", common.ErrImport, start, err)
		}
		for _, f := range res.Failed {
			s.logger.Warn(ctx, "location rejected", "index", start+f.Index, "codigo_postal", f.CodigoPostal, "error", f.Message)
		}
		inserted += int64(res.Inserted)
		report.FailedItems += len(res.Failed)
		report.Batches = append(report.Batches, res)
	}

	if err := s.repo.EnsureIndexes(ctx); err != nil {
		s.logger.Warn(ctx, "location indexes not created", "error", err)
	}

	report.TotalCodigosPostales = inserted
	report.TotalAsentamientos = s.countSettlements(ctx)
	report.Message = fmt.Sprintf("%d postal codes loaded", inserted)

	s.logger.Info(ctx, "locations loaded",
		"source", where,
		"postal_codes", inserted,
		"settlements", report.TotalAsentamientos,
		"skipped", parsed.SkippedRecords,
		"failed", report.FailedItems,
	)
	return report, nil
}

func (s *LocationService) countSettlements(ctx context.Context) int64 {
	n, err := s.repo.CountSettlements(ctx)
	if err != nil {
		s.logger.Warn(ctx, "settlement count failed", "error", err)
		return 0
	}
	return n
}

// ByPostalCode normalizes raw and looks it up. An empty catalogue yields
// common.ErrNoLocations, an unknown code common.ErrorNotFound.
func (s *LocationService) ByPostalCode(ctx context.Context, raw string) (*models.Location, error) {
	cp, err := sepomex.NormalizePostalCode(raw)
	if err != nil {
		return nil, err
	}

	loc, err := s.repo.FindByPostalCode(ctx, cp)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	n, cerr := s.repo.Count(ctx)
	if cerr != nil {
		return nil, cerr
	}
	if n == 0 {
		return nil, common.ErrNoLocations
	}
	return nil, fmt.Errorf("%w: postal code %s", common.ErrorNotFound, cp)
}

func (s *LocationService) ByState(ctx context.Context, estado string, limit, skip int) (*models.LocationPage, error) {
	estado = strings.TrimSpace(estado)
	if estado == "" {
		return nil, fmt.Errorf("%w: estado is required", common.ErrorValidation)
	}
	limit = clamp(limit, DefaultStateLimit, MaxStateLimit)
	if skip < 0 {
		skip = 0
	}

	items, total, err := s.repo.FindByState(ctx, estado, limit, skip)
	if err != nil {
		return nil, err
	}
	return &models.LocationPage{
		Results: items,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: int64(skip+limit) < total,
	}, nil
}

func (s *LocationService) Sample(ctx context.Context, limit int) (*LocationSample, error) {
	limit = clamp(limit, DefaultSampleSize, MaxSampleSize)
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Sample(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &LocationSample{Samples: items, TotalCount: n}, nil
}

// XMLSample reads the first n raw records of the source without storing
// anything.
func (s *LocationService) XMLSample(ctx context.Context, n int) (*XMLSample, error) {
	n = clamp(n, DefaultXMLSample, MaxSampleSize)
	rc, where, err := s.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	res, err := sepomex.Sample(rc, n)
	if err != nil {
		return nil, err
	}
	return &XMLSample{Source: where, SampleResult: res}, nil
}
