package controllers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-parser/app/models"
	"github.com/address-parser/app/requests"
	"github.com/address-parser/app/responses"
	"github.com/address-parser/app/services"
	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/catalog"
)

// AddressController serves the address-matching HTTP endpoints.
type AddressController struct {
	addressService *services.AddressService
	cacheService   services.ICacheService
	catalog        *catalog.Catalog
	logger         *zap.Logger
}

// NewAddressController wires a controller against its dependencies.
func NewAddressController(addressService *services.AddressService, cacheService services.ICacheService, cat *catalog.Catalog, logger *zap.Logger) *AddressController {
	return &AddressController{
		addressService: addressService,
		cacheService:   cacheService,
		catalog:        cat,
		logger:         logger,
	}
}

// MatchRaw handles POST /match: body is the raw address as text/plain.
func (ac *AddressController) MatchRaw(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "EMPTY_BODY", Message: "request body must contain a raw address"})
		return
	}

	result := ac.resolveWithCache(c, string(body))
	if !result.HasBestCandidate {
		c.JSON(http.StatusNotFound, responses.FromMatchResult(result))
		return
	}
	c.JSON(http.StatusOK, responses.FromMatchResult(result))
}

// ParseAddress handles POST /v1/addresses/parse.
func (ac *AddressController) ParseAddress(c *gin.Context) {
	var req requests.ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	start := time.Now()
	cacheKey := services.CacheKey(req.Address, ac.catalog.Version())

	if cached, found, err := ac.cacheService.Get(c.Request.Context(), cacheKey); err == nil && found {
		c.JSON(http.StatusOK, responses.ParseAddressResponse{
			Result:           responses.FromMatchResult(*cached.Result),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			CacheHit:         true,
		})
		return
	}

	result, err := ac.addressService.Resolve(c.Request.Context(), req.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "PARSE_ERROR", Message: err.Error()})
		return
	}

	ac.cacheService.Set(c.Request.Context(), cacheKey, &models.CachedResult{
		Result:         &result,
		CatalogVersion: ac.catalog.Version(),
		CachedAt:       time.Now(),
	})

	c.JSON(http.StatusOK, responses.ParseAddressResponse{
		Result:           responses.FromMatchResult(result),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CacheHit:         false,
	})
}

func (ac *AddressController) resolveWithCache(c *gin.Context, raw string) addrmodel.MatchResult {
	cacheKey := services.CacheKey(raw, ac.catalog.Version())
	if cached, found, err := ac.cacheService.Get(c.Request.Context(), cacheKey); err == nil && found {
		return *cached.Result
	}

	result, err := ac.addressService.Resolve(c.Request.Context(), raw)
	if err != nil {
		return addrmodel.MatchResult{Raw: raw, SelectedStrategy: addrmodel.StrategyNone, SelectedConfidence: "0.00"}
	}

	ac.cacheService.Set(c.Request.Context(), cacheKey, &models.CachedResult{
		Result:         &result,
		CatalogVersion: ac.catalog.Version(),
		CachedAt:       time.Now(),
	})
	return result
}

// BatchParse handles POST /v1/addresses/batch.
func (ac *AddressController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	if len(req.Addresses) > services.MaxBatchSize() {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "TOO_MANY_ADDRESSES",
			Message: "address count exceeds the batch limit",
		})
		return
	}

	jobID := ac.addressService.SubmitBatch(req.Addresses)
	c.JSON(http.StatusAccepted, responses.BatchParseResponse{
		JobID:          jobID,
		TotalAddresses: len(req.Addresses),
	})
}

// GetJobStatus handles GET /v1/addresses/jobs/:id.
func (ac *AddressController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("id")
	status, err := ac.addressService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "JOB_NOT_FOUND", Message: err.Error()})
		return
	}

	progress := 0.0
	if status.Total > 0 {
		progress = float64(status.Processed) / float64(status.Total)
	}
	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     status.ID,
		State:     status.State,
		Progress:  progress,
		Processed: status.Processed,
		Total:     status.Total,
	})
}

// GetJobResults handles GET /v1/addresses/jobs/:id/results, optionally
// streaming as gzip-compressed NDJSON (?format=ndjson&gzip=1).
func (ac *AddressController) GetJobResults(c *gin.Context) {
	jobID := c.Param("id")

	if c.Query("format") == "ndjson" {
		ac.streamNDJSONResults(c, jobID, c.Query("gzip") == "1")
		return
	}

	results, err := ac.addressService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "JOB_NOT_FOUND", Message: err.Error()})
		return
	}

	out := make([]responses.MatchResponse, 0, len(results))
	for _, result := range results {
		out = append(out, responses.FromMatchResult(result))
	}
	c.JSON(http.StatusOK, out)
}

func (ac *AddressController) streamNDJSONResults(c *gin.Context, jobID string, gzipEnabled bool) {
	resultChannel, err := ac.addressService.GetJobResultsStream(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "JOB_NOT_FOUND", Message: err.Error()})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")

	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		c.Header("Content-Encoding", "gzip")
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{ResponseWriter: c.Writer, gzWriter: gzWriter}
	}

	encoder := json.NewEncoder(writer)
	for result := range resultChannel {
		if err := encoder.Encode(responses.FromMatchResult(result)); err != nil {
			ac.logger.Error("ndjson encode failed", zap.Error(err))
			break
		}
		if flusher, ok := writer.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// gzipResponseWriter wraps gin's ResponseWriter to transparently gzip the
// NDJSON stream.
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// HealthCheck handles GET /health.
func (ac *AddressController) HealthCheck(c *gin.Context) {
	uptime := time.Since(ac.addressService.GetStartTime())
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:         "healthy",
		Uptime:         uptime.String(),
		CatalogVersion: ac.catalog.Version(),
		CatalogSize:    ac.catalog.Len(),
	})
}
