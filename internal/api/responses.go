package api

import "github.com/madeengine/memoryd/internal/models"

// envelope wraps every response in a uniform success/error shape.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(data any) envelope {
	return envelope{Success: true, Data: data}
}

func fail(message string) envelope {
	return envelope{Success: false, Error: message}
}

// cognitiveRecordResponse is the wire shape of a CognitiveRecord,
// re-expressing its internal OCEAN/PFactor fields for API consumers.
type cognitiveRecordResponse struct {
	StoreID             string             `json:"store_id"`
	ReportID            string             `json:"report_id"`
	OceanRaw            models.OceanScores `json:"ocean_raw"`
	OceanNorm           models.OceanScores `json:"ocean_normalized"`
	PFactor             float64            `json:"p_factor"`
	InitialPriorityHint float64            `json:"initial_priority_hint"`

	LastUtterance                string  `json:"last_utterance,omitempty"`
	LastUtteranceRetention        float64 `json:"last_utterance_retention,omitempty"`
	LastUtteranceConfidenceScore  float64 `json:"last_utterance_confidence_score,omitempty"`
	LastUtteranceConfidenceBand   string  `json:"last_utterance_confidence_band,omitempty"`
	LastUtterancePhase            string  `json:"last_utterance_phase,omitempty"`
	LastUtteranceAt               string  `json:"last_utterance_at,omitempty"`

	CreatedAt string `json:"created_at"`
}

func toRecordResponse(rec models.CognitiveRecord) cognitiveRecordResponse {
	resp := cognitiveRecordResponse{
		StoreID:                      rec.StoreID,
		ReportID:                     rec.ReportID,
		OceanRaw:                     rec.OceanRaw,
		OceanNorm:                    rec.OceanNorm,
		PFactor:                      rec.PFactor,
		InitialPriorityHint:          rec.InitialPriorityHint,
		LastUtterance:                rec.LastUtterance,
		LastUtteranceRetention:       rec.LastUtteranceRetention,
		LastUtteranceConfidenceScore: rec.LastUtteranceConfidenceScore,
		LastUtteranceConfidenceBand:  rec.LastUtteranceConfidenceBand,
		LastUtterancePhase:           rec.LastUtterancePhase,
		CreatedAt:                    rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if !rec.LastUtteranceAt.IsZero() {
		resp.LastUtteranceAt = rec.LastUtteranceAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// taskResponse is the wire shape of a TaskRecord.
type taskResponse struct {
	TaskID        string  `json:"task_id"`
	ReportID      string  `json:"report_id"`
	TaskName      string  `json:"task_name"`
	Importance    float64 `json:"importance"`
	RequiredTime  float64 `json:"required_time"`
	AvailableTime float64 `json:"available_time"`
	Priority      float64 `json:"priority"`
	PriorityLabel string  `json:"priority_label"`
}

func toTaskResponse(t models.TaskRecord, priority float64, label string) taskResponse {
	return taskResponse{
		TaskID:        t.TaskID,
		ReportID:      t.ReportID,
		TaskName:      t.TaskName,
		Importance:    t.Importance,
		RequiredTime:  t.RequiredTime,
		AvailableTime: t.AvailableTime,
		Priority:      priority,
		PriorityLabel: label,
	}
}
