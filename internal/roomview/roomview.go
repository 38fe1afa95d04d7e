// Package roomview derives the room header shown to the current viewer.
package roomview

import (
	"strings"
	"time"

	"github.com/weiawesome/momentroom/internal/domain"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "2006.01.02"
)

// Header is the role-gated view of a room. Zero values mean hidden: an empty
// Since, a false CanCreateMoment and a zero PendingJoinRequestCount are not
// shown.
type Header struct {
	DisplayName             string
	DisplayDescription      string
	Since                   string
	CanCreateMoment         bool
	PendingJoinRequestCount int
}

// ShowPendingJoinRequests reports whether the pending-request badge is shown.
func (h Header) ShowPendingJoinRequests() bool {
	return h.PendingJoinRequestCount > 0
}

// Derive computes the header for info. A nil info yields the all-hidden header.
func Derive(info *domain.RoomInfo) Header {
	if info == nil {
		return Header{}
	}

	h := Header{
		DisplayName:        info.RoomName,
		DisplayDescription: info.RoomDescription,
		Since:              FormatSince(info.CreatedAt),
		CanCreateMoment:    info.IsMember,
	}

	if info.IsMember && info.RoomDetail != nil && info.RoomDetail.NumOfNewJoinRequests > 0 {
		h.PendingJoinRequestCount = info.RoomDetail.NumOfNewJoinRequests
	}

	return h
}

// FormatSince renders the date part of a timestamp as YYYY.MM.DD. Anything
// that does not start with a valid date gives "".
func FormatSince(createdAt string) string {
	date := strings.TrimSpace(createdAt)
	if i := strings.IndexAny(date, "T "); i >= 0 {
		date = date[:i]
	}

	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.Format(displayLayout)
}
