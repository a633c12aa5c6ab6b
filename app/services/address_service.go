package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/address-parser/app/models"
	"github.com/address-parser/helpers/utils"
	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/catalog"
	"github.com/address-parser/internal/matcher"
)

// ErrEmptyAddress is returned by Resolve when given an empty raw address.
var ErrEmptyAddress = errors.New("address is empty")

// ErrJobNotFound is returned when a job id is unknown.
var ErrJobNotFound = errors.New("job not found")

const maxBatchSize = 20000

// AddressService resolves single addresses against the catalog and runs
// batch jobs in the background, the address-matching repointing of the
// teacher's job-map pattern.
type AddressService struct {
	catalog    *catalog.Catalog
	thresholds matcher.Thresholds
	logger     *zap.Logger
	startTime  time.Time

	mu         sync.RWMutex
	jobs       map[string]*models.JobStatus
	jobResults map[string][]addrmodel.MatchResult
}

// NewAddressService wires a resolver against cat using the given strategy
// thresholds.
func NewAddressService(cat *catalog.Catalog, thresholds matcher.Thresholds, logger *zap.Logger) *AddressService {
	return &AddressService{
		catalog:    cat,
		thresholds: thresholds,
		logger:     logger,
		startTime:  time.Now(),
		jobs:       make(map[string]*models.JobStatus),
		jobResults: make(map[string][]addrmodel.MatchResult),
	}
}

// Resolve matches a single raw address against the catalog.
func (as *AddressService) Resolve(ctx context.Context, raw string) (addrmodel.MatchResult, error) {
	if raw == "" {
		return addrmodel.MatchResult{}, ErrEmptyAddress
	}
	return matcher.Match(ctx, raw, as.catalog, as.thresholds)
}

// SubmitBatch registers a new job and starts processing addresses in the
// background, returning the job id immediately. addresses beyond
// maxBatchSize are rejected by the caller before this is invoked.
func (as *AddressService) SubmitBatch(addresses []string) string {
	jobID := utils.GenerateUUID()

	as.mu.Lock()
	as.jobs[jobID] = &models.JobStatus{
		ID:        jobID,
		State:     models.JobStatePending,
		Total:     len(addresses),
		CreatedAt: time.Now(),
	}
	as.mu.Unlock()

	go as.processBatch(jobID, addresses)
	return jobID
}

// MaxBatchSize is the upper bound on a single batch submission.
func MaxBatchSize() int { return maxBatchSize }

func (as *AddressService) processBatch(jobID string, addresses []string) {
	as.setJobState(jobID, models.JobStateRunning)

	results := make([]addrmodel.MatchResult, len(addresses))
	ctx := context.Background()

	for i, address := range addresses {
		result, err := as.Resolve(ctx, address)
		if err != nil {
			result = addrmodel.MatchResult{
				Raw:                address,
				SelectedStrategy:   addrmodel.StrategyNone,
				SelectedConfidence: "0.00",
			}
		}
		results[i] = result

		as.mu.Lock()
		if job, exists := as.jobs[jobID]; exists {
			job.Processed = i + 1
		}
		as.mu.Unlock()
	}

	as.mu.Lock()
	as.jobResults[jobID] = results
	if job, exists := as.jobs[jobID]; exists {
		now := time.Now()
		job.State = models.JobStateCompleted
		job.CompletedAt = &now
	}
	as.mu.Unlock()

	as.logger.Info("batch job completed", zap.String("job_id", jobID), zap.Int("total", len(addresses)))
}

func (as *AddressService) setJobState(jobID, state string) {
	as.mu.Lock()
	defer as.mu.Unlock()
	if job, exists := as.jobs[jobID]; exists {
		job.State = state
	}
}

// GetJobStatus returns the current status of a submitted batch job.
func (as *AddressService) GetJobStatus(jobID string) (*models.JobStatus, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	job, exists := as.jobs[jobID]
	if !exists {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// GetJobResults returns the full result set of a completed job.
func (as *AddressService) GetJobResults(jobID string) ([]addrmodel.MatchResult, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	results, exists := as.jobResults[jobID]
	if !exists {
		return nil, ErrJobNotFound
	}
	return results, nil
}

// GetJobResultsStream streams a completed job's results over a buffered
// channel, for NDJSON response writers.
func (as *AddressService) GetJobResultsStream(jobID string) (<-chan addrmodel.MatchResult, error) {
	results, err := as.GetJobResults(jobID)
	if err != nil {
		return nil, err
	}

	out := make(chan addrmodel.MatchResult, 100)
	go func() {
		defer close(out)
		for _, result := range results {
			out <- result
		}
	}()
	return out, nil
}

// GetStartTime returns when the service was constructed, for uptime
// reporting.
func (as *AddressService) GetStartTime() time.Time {
	return as.startTime
}
