package domain

// Condition selects which room attribute the search query matches.
type Condition string

const (
	ConditionRoom Condition = "room"
	ConditionHost Condition = "host"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	return c == ConditionRoom || c == ConditionHost
}

// Order is the sort order of a room listing.
type Order string

const (
	OrderDateDesc Order = "date_desc"
	OrderDateAsc  Order = "date_asc"
)

// Valid reports whether o is a known order.
func (o Order) Valid() bool {
	return o == OrderDateDesc || o == OrderDateAsc
}

// Search parameter field names, as used in query strings and form inputs.
const (
	FieldQuery     = "q"
	FieldCondition = "condition"
	FieldOrder     = "order"
)

// SearchParams is an immutable room search. Two values with equal fields are
// interchangeable for caching.
type SearchParams struct {
	Q         string    `json:"q"`
	Condition Condition `json:"condition"`
	Order     Order     `json:"order"`
}

// DefaultSearchParams is the "browse all" search shown before any input.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Q:         "",
		Condition: ConditionRoom,
		Order:     OrderDateDesc,
	}
}

// RoomMetadata identifies a room in listings.
type RoomMetadata struct {
	RoomID          int64  `json:"roomId"`
	RoomName        string `json:"roomName"`
	RoomDescription string `json:"roomDescription,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
}

// RoomCardInfo is the read-only projection of a room used in search results.
// RoomMetadata.RoomID is unique within one listing.
type RoomCardInfo struct {
	RoomMetadata RoomMetadata `json:"roomMetadata"`
	HostNickname string       `json:"hostNickname,omitempty"`
	NumOfMembers int          `json:"numOfMembers"`
}
