package query

import (
	"errors"
	"testing"

	"github.com/weiawesome/momentroom/internal/domain"
)

func TestComposeReplacesOneField(t *testing.T) {
	base := domain.DefaultSearchParams()

	next, err := Compose(base, domain.FieldQuery, "jazz")
	if err != nil {
		t.Fatal(err)
	}
	if next.Q != "jazz" || next.Condition != base.Condition || next.Order != base.Order {
		t.Fatalf("unexpected params: %+v", next)
	}
	if base.Q != "" {
		t.Fatal("input params must not be modified")
	}

	next, err = Compose(next, domain.FieldCondition, "host")
	if err != nil {
		t.Fatal(err)
	}
	if next.Q != "jazz" || next.Condition != domain.ConditionHost {
		t.Fatalf("unexpected params: %+v", next)
	}
}

func TestComposeRejectsUnknownInput(t *testing.T) {
	base := domain.DefaultSearchParams()

	if _, err := Compose(base, "page", "2"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := Compose(base, domain.FieldCondition, "owner"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	got, err := Compose(base, domain.FieldOrder, "random")
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if got != base {
		t.Fatal("failed compose should return the current params")
	}
}

func TestDeriveKeyEqualParamsEqualKeys(t *testing.T) {
	a := domain.SearchParams{Q: "cats", Condition: domain.ConditionHost, Order: domain.OrderDateAsc}
	b := domain.SearchParams{Q: "cats", Condition: domain.ConditionHost, Order: domain.OrderDateAsc}

	if DeriveKey(KindRooms, a) != DeriveKey(KindRooms, b) {
		t.Fatal("equal params must derive equal keys")
	}
}

func TestDeriveKeyChangesWithEveryField(t *testing.T) {
	base := domain.DefaultSearchParams()
	baseKey := DeriveKey(KindRooms, base)

	changes := []struct {
		field string
		value string
	}{
		{domain.FieldQuery, "a"},
		{domain.FieldQuery, " "},
		{domain.FieldCondition, "host"},
		{domain.FieldOrder, "date_asc"},
	}

	for _, c := range changes {
		next, err := Compose(base, c.field, c.value)
		if err != nil {
			t.Fatal(err)
		}
		if DeriveKey(KindRooms, next) == baseKey {
			t.Fatalf("changing %s to %q did not change the key", c.field, c.value)
		}
	}
}

func TestDeriveKeyNoCollisions(t *testing.T) {
	queries := []string{"", "a", "a&condition=host", "a=b", "a%26", "a b", "a+b", "room", "host", "?"}
	conditions := []domain.Condition{domain.ConditionRoom, domain.ConditionHost}
	orders := []domain.Order{domain.OrderDateDesc, domain.OrderDateAsc}

	seen := make(map[Key]domain.SearchParams)
	for _, q := range queries {
		for _, c := range conditions {
			for _, o := range orders {
				p := domain.SearchParams{Q: q, Condition: c, Order: o}
				k := DeriveKey(KindRooms, p)
				if prev, ok := seen[k]; ok {
					t.Fatalf("collision: %+v and %+v both map to %q", prev, p, k)
				}
				seen[k] = p
			}
		}
	}
}

func TestDeriveKeyDependsOnKind(t *testing.T) {
	p := domain.DefaultSearchParams()
	if DeriveKey(KindRooms, p) == DeriveKey("users", p) {
		t.Fatal("different resource kinds must not share keys")
	}
}

func TestEmptyQueryIsDistinctKey(t *testing.T) {
	p := domain.DefaultSearchParams()
	want := Key("rooms?condition=room&order=date_desc&q=")
	if got := DeriveKey(KindRooms, p); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEntityKeys(t *testing.T) {
	if RoomKey(7) != "room/7" {
		t.Fatalf("unexpected room key %q", RoomKey(7))
	}
	if MomentKey(7) == RoomKey(7) {
		t.Fatal("moment and room keys must differ")
	}
}

func TestValues(t *testing.T) {
	v := Values(domain.SearchParams{Q: "x y", Condition: domain.ConditionHost, Order: domain.OrderDateDesc})
	if got := v.Encode(); got != "condition=host&order=date_desc&q=x+y" {
		t.Fatalf("unexpected encoding %q", got)
	}
}
