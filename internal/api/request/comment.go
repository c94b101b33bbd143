package request

type CreateComment struct {
	Author string `json:"author" validate:"required,max=128"`
	Body   string `json:"body" validate:"required"`
}

// CreateCommentFlat is the body of POST /comments, where the anomaly id is
// not in the path.
type CreateCommentFlat struct {
	AnomalyID int64  `json:"anomalyId" validate:"required,gt=0"`
	Author    string `json:"author" validate:"required,max=128"`
	Body      string `json:"body" validate:"required"`
}

type UpdateComment struct {
	Body string `json:"body" validate:"required"`
}

type CreateAPIKey struct {
	Name string `json:"name" validate:"required,max=128"`
}
