package model

import "time"

type Anomaly struct {
	ID                  int64      `json:"id" db:"id"`
	Description         string     `json:"description" db:"description"`
	Equipment           string     `json:"equipment" db:"equipment"`
	EquipmentNumber     string     `json:"equipmentNumber,omitempty" db:"equipment_number"`
	DetectionDate       time.Time  `json:"detectionDate" db:"detection_date"`
	Status              string     `json:"status" db:"status"`
	System              string     `json:"system,omitempty" db:"system"`
	Unit                string     `json:"unit,omitempty" db:"unit"`
	Service             string     `json:"service,omitempty" db:"service"`
	CurrentSystemStatus string     `json:"currentSystemStatus,omitempty" db:"current_system_status"`
	EstimatedTime       *int       `json:"estimatedTime,omitempty" db:"estimated_time"`
	SysShutdownRequired bool       `json:"sysShutDownRequired" db:"sys_shutdown_required"`
	UserFeedback        bool       `json:"userFeedBack" db:"user_feedback"`

	// Model-predicted severity sub-scores, each in [0, 3.3].
	PredictedDisponibility *float64 `json:"predictedDisponibility,omitempty" db:"predicted_disponibility"`
	PredictedIntegrity     *float64 `json:"predictedIntegrity,omitempty" db:"predicted_integrity"`
	PredictedProcessSafety *float64 `json:"predictedProcessSafety,omitempty" db:"predicted_process_safety"`

	// User-confirmed sub-scores, meaningful only while UserFeedback is true.
	FinalDisponibility *float64 `json:"finalDisponibility,omitempty" db:"final_disponibility"`
	FinalIntegrity     *float64 `json:"finalIntegrity,omitempty" db:"final_integrity"`
	FinalProcessSafety *float64 `json:"finalProcessSafety,omitempty" db:"final_process_safety"`

	// Criticality is the persisted combined score (sum of per-metric ceilings).
	Criticality int `json:"criticality" db:"criticality"`

	MaintenanceWindowID *int64     `json:"maintenanceWindowId,omitempty" db:"maintenance_window_id"`
	REXSummary          *string    `json:"rexSummary,omitempty" db:"rex_summary"`
	TreatedAt           *time.Time `json:"treatedAt,omitempty" db:"treated_at"`
	ClosedAt            *time.Time `json:"closedAt,omitempty" db:"closed_at"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

type ActionPlanItem struct {
	ID          int64     `json:"id" db:"id"`
	AnomalyID   int64     `json:"anomalyId" db:"anomaly_id"`
	Position    int       `json:"position" db:"position"`
	Action      string    `json:"action" db:"action"`
	Responsible string    `json:"responsible,omitempty" db:"responsible"`
	Resources   string    `json:"resources,omitempty" db:"resources"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
