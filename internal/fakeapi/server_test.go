package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestGetRoomDependsOnViewer(t *testing.T) {
	s := New()
	s.AddRoom(Room{ID: 1, Name: "Jazz", CreatedAt: "2024-01-05T00:00:00Z", Members: []string{"u1"}})

	var anon struct {
		Result map[string]interface{} `json:"result"`
	}
	w := do(t, s, http.MethodGet, "/api/rooms/1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &anon)
	if anon.Result["isMember"] != false || anon.Result["roomDetail"] != nil {
		t.Fatalf("anonymous viewer must not see member data: %v", anon.Result)
	}

	var member struct {
		Result map[string]interface{} `json:"result"`
	}
	w = do(t, s, http.MethodGet, "/api/rooms/1", Token("u1", "neo", time.Hour), "")
	json.Unmarshal(w.Body.Bytes(), &member)
	if member.Result["isMember"] != true || member.Result["roomDetail"] == nil {
		t.Fatalf("member should see room detail: %v", member.Result)
	}

	if s.Hits("GET /api/rooms/:id") != 2 {
		t.Fatalf("unexpected hit count %d", s.Hits("GET /api/rooms/:id"))
	}
}

func TestJoinRequiresAuth(t *testing.T) {
	s := New()
	s.AddRoom(Room{ID: 1, Name: "Jazz"})

	if w := do(t, s, http.MethodPost, "/api/rooms/1/join-requests", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/api/rooms/1/join-requests", Token("u2", "", -time.Minute), ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected expired token to be rejected, got %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/api/rooms/1/join-requests", Token("u2", "", time.Hour), ""); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if got := s.JoinRequests(1); len(got) != 1 || got[0] != "u2" {
		t.Fatalf("unexpected join requests %v", got)
	}
}

func TestSignupConflicts(t *testing.T) {
	s := New()
	s.AddAccount("neo@example.com", "neo")

	w := do(t, s, http.MethodPost, "/api/signup", "", `{"email":"NEO@example.com","password":"x","nickname":"trin"}`)
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "40901") {
		t.Fatalf("expected email conflict, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, s, http.MethodPost, "/api/signup", "", `{"email":"trin@example.com","password":"x","nickname":"neo"}`)
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "40902") {
		t.Fatalf("expected nickname conflict, got %d %s", w.Code, w.Body.String())
	}
}

func TestFail(t *testing.T) {
	s := New()
	s.Fail("GET /api/rooms", http.StatusBadGateway)

	if w := do(t, s, http.MethodGet, "/api/rooms", "", ""); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	s.Fail("GET /api/rooms", 0)
	if w := do(t, s, http.MethodGet, "/api/rooms", "", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
