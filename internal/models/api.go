package models

// Wire-format request and response bodies. Unknown input fields are ignored.

type FloorPlanCreateRequest struct {
	UserID     string  `json:"user_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	FileType   string  `json:"file_type" binding:"required"`
	CanvasData *string `json:"canvas_data"`
}

type FloorPlanUpdateRequest struct {
	Name       *string `json:"name"`
	Status     *string `json:"status"`
	ThreeDData *string `json:"three_d_data"`
}

type ConversationCreateRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Title  string `json:"title"`
}

type ChatRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
	Model          string `json:"model"`
}

type ChatResponse struct {
	Message string `json:"message"`
	Model   string `json:"model"`
}

type UserPreferenceUpdateRequest struct {
	PreferredModel    *string                `json:"preferred_model"`
	RenderQuality     *string                `json:"render_quality"`
	DefaultWallHeight *float64               `json:"default_wall_height"`
	Preferences       map[string]interface{} `json:"preferences"`
}

type FeedbackCreateRequest struct {
	UserID       string  `json:"user_id" binding:"required"`
	FloorPlanID  *string `json:"floor_plan_id"`
	FeedbackType string  `json:"feedback_type" binding:"required"`
	Content      string  `json:"content" binding:"required"`
	Rating       *int    `json:"rating"`
}

type RenderRequest struct {
	FloorPlanID string `json:"floor_plan_id" binding:"required"`
	Quality     string `json:"quality"` // low, medium, high
	Style       string `json:"style"`   // realistic, wireframe, stylized
}

type RenderResult struct {
	Status         string `json:"status"`
	Quality        string `json:"quality"`
	Style          string `json:"style"`
	RenderURL      string `json:"render_url"`
	ProcessingTime string `json:"processing_time"`
}

type UploadResponse struct {
	Message      string `json:"message"`
	FileURL      string `json:"file_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type ConvertResponse struct {
	Message    string                 `json:"message"`
	ThreeDData map[string]interface{} `json:"three_d_data"`
}

type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
