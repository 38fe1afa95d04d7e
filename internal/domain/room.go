package domain

// RoomDetail carries member-only room data.
type RoomDetail struct {
	NumOfNewJoinRequests int `json:"numOfNewJoinRequests"`
}

// RoomInfo is a room as seen by the current viewer. It is replaced on re-fetch
// and never mutated in place.
type RoomInfo struct {
	RoomID          int64       `json:"roomId"`
	RoomName        string      `json:"roomName"`
	RoomDescription string      `json:"roomDescription"`
	CreatedAt       string      `json:"createdAt"`
	IsMember        bool        `json:"isMember"`
	RoomDetail      *RoomDetail `json:"roomDetail,omitempty"`
}

// JoinRequestResult is returned after asking to join a room.
type JoinRequestResult struct {
	RoomID int64  `json:"roomId"`
	Status string `json:"status"`
}
