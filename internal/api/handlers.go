package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madeengine/memoryd/internal/models"
	"github.com/madeengine/memoryd/internal/personality"
	"github.com/madeengine/memoryd/internal/retention"
	"github.com/madeengine/memoryd/internal/signals"
	"github.com/madeengine/memoryd/internal/version"
)

// healthHandler reports process and database health.
func (s *Server) healthHandler(c *gin.Context) {
	dbHealth, err := s.store.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, fail("database unavailable"))
		return
	}
	c.JSON(http.StatusOK, ok(gin.H{
		"version":  version.Full(),
		"database": dbHealth,
	}))
}

// defaultInitialBaseMemory is the fixed base memory used for the initial
// utterance synthesized at record-creation time when the caller doesn't
// supply one.
const defaultInitialBaseMemory = "Initial data ingestion and personality assessment."

// createRecordHandler projects normalized OCEAN scores into a p_factor,
// persists a new CognitiveRecord, synchronously synthesizes and stores its
// initial utterance, and starts a Degradation Monitor session for it.
func (s *Server) createRecordHandler(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(err.Error()))
		return
	}

	norm := personality.Normalized{
		Openness:          req.OpennessNorm,
		Conscientiousness: req.ConscientiousnessNorm,
		Extraversion:      req.ExtraversionNorm,
		Agreeableness:     req.AgreeablenessNorm,
		Neuroticism:       req.NeuroticismNorm,
	}
	pFactor := personality.Project(norm)

	rec := models.CognitiveRecord{
		ReportID: req.ReportID,
		OceanRaw: models.OceanScores{
			Openness:          req.Openness,
			Conscientiousness: req.Conscientiousness,
			Extraversion:      req.Extraversion,
			Agreeableness:     req.Agreeableness,
			Neuroticism:       req.Neuroticism,
		},
		OceanNorm: models.OceanScores{
			Openness:          req.OpennessNorm,
			Conscientiousness: req.ConscientiousnessNorm,
			Extraversion:      req.ExtraversionNorm,
			Agreeableness:     req.AgreeablenessNorm,
			Neuroticism:       req.NeuroticismNorm,
		},
		PFactor: pFactor,
	}
	// InitialPriorityHint is diagnostic only; it is computed from fixed
	// placeholder task scalars rather than any real task, and it is never
	// consulted by the priority functions in internal/signals.
	rec.InitialPriorityHint, _ = signals.Priority(0.8, 2.0, 5.0)

	saved, err := s.store.Put(c.Request.Context(), rec)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	baseMemory := req.BaseMemory
	if baseMemory == "" {
		baseMemory = defaultInitialBaseMemory
	}

	result := retention.Calculate(saved.PFactor, 0)
	confidenceScore, confidenceBand := signals.Confidence(result.Retention)

	var utterance string
	if s.dispatcher != nil {
		utterance = s.dispatcher.Generate(c.Request.Context(), baseMemory, confidenceBand, result.Phase.String(), result.Retention)
	} else {
		utterance = baseMemory
	}

	update := models.UtteranceUpdate{
		LastUtterance:                utterance,
		LastUtteranceRetention:       result.Retention,
		LastUtteranceConfidenceScore: confidenceScore,
		LastUtteranceConfidenceBand:  confidenceBand,
		LastUtterancePhase:           result.Phase.String(),
		LastUtteranceAt:              time.Now(),
	}
	if err := s.store.UpdateUtteranceFields(c.Request.Context(), saved.ReportID, update); err != nil {
		mapServiceError(c, err)
		return
	}
	saved.LastUtterance = update.LastUtterance
	saved.LastUtteranceRetention = update.LastUtteranceRetention
	saved.LastUtteranceConfidenceScore = update.LastUtteranceConfidenceScore
	saved.LastUtteranceConfidenceBand = update.LastUtteranceConfidenceBand
	saved.LastUtterancePhase = update.LastUtterancePhase
	saved.LastUtteranceAt = update.LastUtteranceAt

	if s.pool != nil {
		s.pool.StartSession(context.WithoutCancel(c.Request.Context()), saved, baseMemory)
	}

	c.JSON(http.StatusCreated, ok(toRecordResponse(saved)))
}

// getRecordHandler returns a single CognitiveRecord by report ID.
func (s *Server) getRecordHandler(c *gin.Context) {
	reportID := c.Param("report_id")
	rec, err := s.store.GetByReport(c.Request.Context(), reportID)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok(toRecordResponse(rec)))
}

// listRecordsHandler returns every CognitiveRecord, most recently
// created first.
func (s *Server) listRecordsHandler(c *gin.Context) {
	recs, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		mapServiceError(c, err)
		return
	}
	out := make([]cognitiveRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, toRecordResponse(r))
	}
	c.JSON(http.StatusOK, ok(out))
}

// deleteRecordHandler removes a CognitiveRecord and stops its monitor
// session, if one is running.
func (s *Server) deleteRecordHandler(c *gin.Context) {
	reportID := c.Param("report_id")
	if err := s.store.DeleteByReport(c.Request.Context(), reportID); err != nil {
		mapServiceError(c, err)
		return
	}
	if s.pool != nil {
		s.pool.StopSession(reportID)
	}
	c.JSON(http.StatusOK, ok(gin.H{"report_id": reportID}))
}

// simulateRetentionHandler evaluates the forgetting curve on demand for
// a given number of elapsed game-days (defaulting to the days elapsed
// since the record was created), without affecting the live monitor
// session.
func (s *Server) simulateRetentionHandler(c *gin.Context) {
	reportID := c.Param("report_id")
	rec, err := s.store.GetByReport(c.Request.Context(), reportID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	var req simulateRetentionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, fail(err.Error()))
			return
		}
	}

	var result retention.Result
	var gameDays float64
	if req.GameDays != nil {
		gameDays = *req.GameDays
		result = retention.Calculate(rec.PFactor, gameDays)
	} else {
		var diag retention.ClockDiagnostics
		result, diag = retention.FromInstant(rec.PFactor, rec.CreatedAt, time.Now(), 0)
		gameDays = diag.GameDays
	}

	// req.Strength is accepted and intentionally ignored (reserved).

	confidenceScore, confidenceBand := signals.Confidence(result.Retention)
	reconstructionScore, reconstructionBand := signals.Reconstruction(result.Retention)

	resp := gin.H{
		"report_id":           reportID,
		"game_days":           gameDays,
		"retention":           result.Retention,
		"phase":               result.Phase.String(),
		"time_in_slow":        result.TimeInSlow,
		"confidence":          confidenceScore,
		"confidence_band":     confidenceBand,
		"reconstruction":      reconstructionScore,
		"reconstruction_band": reconstructionBand,
	}

	if req.UsePriorityModulated {
		resp["priority_modulated_retention"] = signals.PriorityModulatedRetention(
			gameDays, retention.SFast, rec.PFactor, req.TaskImportance, signals.PriorityModulatedAlpha,
		)
	}

	c.JSON(http.StatusOK, ok(resp))
}

// generateUtteranceHandler asks the Linguistic Dispatcher to phrase the
// given base memory at the agent's current retention/confidence/phase,
// persisting the result as the record's latest utterance.
func (s *Server) generateUtteranceHandler(c *gin.Context) {
	reportID := c.Param("report_id")
	var req generateUtteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(err.Error()))
		return
	}

	rec, err := s.store.GetByReport(c.Request.Context(), reportID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	result, _ := retention.FromInstant(rec.PFactor, rec.CreatedAt, time.Now(), 0)
	confidenceScore, confidenceBand := signals.Confidence(result.Retention)

	var utterance string
	if s.dispatcher != nil {
		utterance = s.dispatcher.Generate(c.Request.Context(), req.BaseMemory, confidenceBand, result.Phase.String(), result.Retention)
	} else {
		utterance = req.BaseMemory
	}

	update := models.UtteranceUpdate{
		LastUtterance:                utterance,
		LastUtteranceRetention:       result.Retention,
		LastUtteranceConfidenceScore: confidenceScore,
		LastUtteranceConfidenceBand:  confidenceBand,
		LastUtterancePhase:           result.Phase.String(),
		LastUtteranceAt:              time.Now(),
	}
	if err := s.store.UpdateUtteranceFields(c.Request.Context(), reportID, update); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{
		"report_id":       reportID,
		"utterance":       utterance,
		"confidence":      confidenceScore,
		"confidence_band": confidenceBand,
		"phase":           result.Phase.String(),
	}))
}

// createTaskHandler persists a task, which may reference a report that
// has no CognitiveRecord yet or any longer — it becomes orphaned rather
// than rejected — and returns it with its computed priority. Urgency is
// reported by listTasksHandler only.
func (s *Server) createTaskHandler(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(err.Error()))
		return
	}

	task := models.TaskRecord{
		ReportID:      req.ReportID,
		TaskName:      req.TaskName,
		Importance:    req.Importance,
		RequiredTime:  req.RequiredTime,
		AvailableTime: req.AvailableTime,
	}

	saved, err := s.store.PutTask(c.Request.Context(), task)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	priority, label := signals.Priority(saved.Importance, saved.RequiredTime, saved.AvailableTime)
	c.JSON(http.StatusCreated, ok(toTaskResponse(saved, priority, label)))
}

// listTasksHandler returns the tasks for a report ID, each annotated
// with its computed priority and urgency.
func (s *Server) listTasksHandler(c *gin.Context) {
	reportID := c.Query("report_id")
	if reportID == "" {
		c.JSON(http.StatusBadRequest, fail("report_id query parameter is required"))
		return
	}
	tasks, err := s.store.ListTasks(c.Request.Context(), reportID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		priority, label := signals.Priority(t.Importance, t.RequiredTime, t.AvailableTime)
		urgency := signals.ComputeUrgency(t.AvailableTime, t.RequiredTime)
		resp := toTaskResponse(t, priority, label)
		out = append(out, gin.H{
			"task":    resp,
			"urgency": urgency,
		})
	}
	c.JSON(http.StatusOK, ok(out))
}
