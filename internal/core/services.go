package core

type Services struct {
	Anomaly           *AnomalyService
	MaintenanceWindow *MaintenanceWindowService
	Comment           *CommentService
	Dashboard         *DashboardService
	APIKey            *APIKeyService
}

func NewServices(db DB) *Services {
	anomaly := NewAnomalyService(db)
	return &Services{
		Anomaly:           anomaly,
		MaintenanceWindow: NewMaintenanceWindowService(db, anomaly),
		Comment:           NewCommentService(db, anomaly),
		Dashboard:         NewDashboardService(db),
		APIKey:            NewAPIKeyService(db),
	}
}
