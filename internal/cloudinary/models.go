package cloudinary

// Response models for the upload API.

type UploadResult struct {
	PublicID     string `json:"public_id"`
	Version      int64  `json:"version"`
	Format       string `json:"format"`
	ResourceType string `json:"resource_type"`
	Bytes        int64  `json:"bytes"`
	URL          string `json:"url"`
	SecureURL    string `json:"secure_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
