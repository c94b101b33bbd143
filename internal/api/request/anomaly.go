package request

import "time"

type CreateAnomaly struct {
	Description         string     `json:"description" validate:"required"`
	Equipment           string     `json:"equipment" validate:"required"`
	EquipmentNumber     string     `json:"equipmentNumber"`
	DetectionDate       *time.Time `json:"detectionDate"`
	System              string     `json:"system"`
	Unit                string     `json:"unit"`
	Service             string     `json:"service"`
	CurrentSystemStatus string     `json:"currentSystemStatus"`
	EstimatedTime       *int       `json:"estimatedTime" validate:"omitempty,gte=0"`
	SysShutdownRequired bool       `json:"sysShutDownRequired"`

	PredictedDisponibility *float64 `json:"predictedDisponibility" validate:"omitempty,gte=0,lte=3.3"`
	PredictedIntegrity     *float64 `json:"predictedIntegrity" validate:"omitempty,gte=0,lte=3.3"`
	PredictedProcessSafety *float64 `json:"predictedProcessSafety" validate:"omitempty,gte=0,lte=3.3"`
}

type UpdateAnomaly struct {
	Description         *string    `json:"description"`
	Equipment           *string    `json:"equipment"`
	EquipmentNumber     *string    `json:"equipmentNumber"`
	DetectionDate       *time.Time `json:"detectionDate"`
	System              *string    `json:"system"`
	Unit                *string    `json:"unit"`
	Service             *string    `json:"service"`
	CurrentSystemStatus *string    `json:"currentSystemStatus"`
	EstimatedTime       *int       `json:"estimatedTime" validate:"omitempty,gte=0"`
	SysShutdownRequired *bool      `json:"sysShutDownRequired"`
	UserFeedback        *bool      `json:"userFeedBack"`

	FinalDisponibility *float64 `json:"finalDisponibility" validate:"omitempty,gte=0,lte=3.3"`
	FinalIntegrity     *float64 `json:"finalIntegrity" validate:"omitempty,gte=0,lte=3.3"`
	FinalProcessSafety *float64 `json:"finalProcessSafety" validate:"omitempty,gte=0,lte=3.3"`

	// Status accepts canonical values or legacy aliases; it is normalized
	// once at decode time before the lifecycle engine sees it.
	Status *string `json:"status" validate:"omitempty,anomaly_status"`
}

type CloseAnomaly struct {
	REXSummary string `json:"rexSummary"`
}

type AddActionPlanItem struct {
	Action      string `json:"action" validate:"required"`
	Responsible string `json:"responsible"`
	Resources   string `json:"resources"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
}

type UpdateActionPlanItem struct {
	Action      *string `json:"action"`
	Responsible *string `json:"responsible"`
	Resources   *string `json:"resources"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
}
