package domain

// CreateMomentRequest is the content of a new moment. Attachments are media
// references resolved by a media source (local path or s3://bucket/key).
type CreateMomentRequest struct {
	RoomID      int64
	Content     string
	Attachments []string
}

// CreateMomentResult is the envelope payload of a moment creation.
type CreateMomentResult struct {
	MomentID int64 `json:"momentId"`
}

// MomentInfo is a moment as returned by the platform.
type MomentInfo struct {
	MomentID  int64    `json:"momentId"`
	RoomID    int64    `json:"roomId"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls"`
	Nickname  string   `json:"nickname"`
	CreatedAt string   `json:"createdAt"`
}
