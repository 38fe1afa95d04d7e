// Package query composes search parameters and derives the cache keys that
// address remote reads.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/weiawesome/momentroom/internal/domain"
)

var (
	ErrUnknownField = errors.New("unknown search field")
	ErrInvalidValue = errors.New("invalid search value")
)

// Resource kinds.
const (
	KindRooms  = "rooms"
	KindRoom   = "room"
	KindMoment = "moment"
)

// Key addresses one memoized remote read.
type Key string

// Compose returns a copy of current with exactly one field replaced.
// current itself is never modified.
func Compose(current domain.SearchParams, field, value string) (domain.SearchParams, error) {
	next := current

	switch field {
	case domain.FieldQuery:
		next.Q = value
	case domain.FieldCondition:
		c := domain.Condition(value)
		if !c.Valid() {
			return current, fmt.Errorf("%w: condition %q", ErrInvalidValue, value)
		}
		next.Condition = c
	case domain.FieldOrder:
		o := domain.Order(value)
		if !o.Valid() {
			return current, fmt.Errorf("%w: order %q", ErrInvalidValue, value)
		}
		next.Order = o
	default:
		return current, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return next, nil
}

// DeriveKey builds the cache key for a search. Every component is escaped and
// written in a fixed order, so distinct params never share a key and an empty
// query is a key of its own.
func DeriveKey(kind string, p domain.SearchParams) Key {
	var b strings.Builder
	b.WriteString(url.PathEscape(kind))
	b.WriteByte('?')
	b.WriteString(domain.FieldCondition)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(string(p.Condition)))
	b.WriteByte('&')
	b.WriteString(domain.FieldOrder)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(string(p.Order)))
	b.WriteByte('&')
	b.WriteString(domain.FieldQuery)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(p.Q))
	return Key(b.String())
}

// RoomKey addresses a single room read.
func RoomKey(roomID int64) Key {
	return Key(KindRoom + "/" + strconv.FormatInt(roomID, 10))
}

// MomentKey addresses a single moment read.
func MomentKey(momentID int64) Key {
	return Key(KindMoment + "/" + strconv.FormatInt(momentID, 10))
}

// Values renders params as the query string of a search request.
func Values(p domain.SearchParams) url.Values {
	v := url.Values{}
	v.Set(domain.FieldQuery, p.Q)
	v.Set(domain.FieldCondition, string(p.Condition))
	v.Set(domain.FieldOrder, string(p.Order))
	return v
}
