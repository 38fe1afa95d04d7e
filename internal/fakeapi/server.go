// Package fakeapi is an in-memory implementation of the platform HTTP API
// for tests.
package fakeapi

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/pkg/jwt"
	"github.com/weiawesome/momentroom/pkg/middleware"
)

// Platform codes not covered by pkg/response.
const (
	CodeForbidden     = 40300
	CodeAlreadyMember = 40903
)

// Room is a seeded room.
type Room struct {
	ID           int64
	Name         string
	Description  string
	CreatedAt    string
	HostNickname string
	Members      []string // user ids
}

type room struct {
	Room
	members      map[string]bool
	joinRequests []string
}

// Upload is a received moment upload.
type Upload struct {
	RoomID  int64
	Content string
	Images  []Image
}

// Image is one uploaded images part.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type account struct {
	domain.SignupRequest
}

// Server serves the platform API under /api.
type Server struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware

	mu            sync.Mutex
	rooms         map[int64]*room
	moments       map[int64]*domain.MomentInfo
	uploads       []Upload
	accounts      []account
	nextMomentID  int64
	hits          map[string]int
	failures      map[string]int
	echoDuplicate bool
	gate          chan struct{}
}

// New creates an empty fake platform.
func New() *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:       gin.New(),
		auth:         middleware.NewAuthMiddleware(),
		rooms:        make(map[int64]*room),
		moments:      make(map[int64]*domain.MomentInfo),
		nextMomentID: 1,
		hits:         make(map[string]int),
		failures:     make(map[string]int),
	}
	s.engine.Use(gin.Recovery(), s.count)
	s.RegisterRoutes(s.engine)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// RegisterRoutes registers all routes.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", s.SearchRooms)
			rooms.GET("/:id", s.auth.OptionalAuth(), s.GetRoom)
			rooms.POST("/:id/join-requests", s.auth.RequireAuth(), s.RequestJoin)
			rooms.POST("/:id/moments", s.auth.RequireAuth(), s.CreateMoment)
		}

		api.GET("/moments/:id", s.GetMoment)
		api.POST("/signup", s.Signup)
	}
}

// AddRoom seeds a room.
func (s *Server) AddRoom(r Room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make(map[string]bool, len(r.Members))
	for _, m := range r.Members {
		members[m] = true
	}
	s.rooms[r.ID] = &room{Room: r, members: members}
}

// AddAccount seeds a registered account.
func (s *Server) AddAccount(email, nickname string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append(s.accounts, account{domain.SignupRequest{Email: email, Nickname: nickname}})
}

// Hits returns how many requests reached route, e.g. "GET /api/rooms".
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[route]
}

// Fail makes every request to route answer with status and an unstructured
// body. A zero status clears it.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// EchoDuplicates makes search list every room twice.
func (s *Server) EchoDuplicates(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.echoDuplicate = on
}

// Hold blocks every request until the returned release func is called.
func (s *Server) Hold() (release func()) {
	gate := make(chan struct{})

	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Uploads returns the moment uploads received so far.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Upload(nil), s.uploads...)
}

// JoinRequests returns the users waiting to join a room.
func (s *Server) JoinRequests(roomID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rooms[roomID]; ok {
		return append([]string(nil), r.joinRequests...)
	}
	return nil
}

// Token issues an access token for userID. The fake platform does not check
// signatures.
func Token(userID, nickname string, ttl time.Duration) string {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(time.Now()),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID:   userID,
		Nickname: nickname,
		Type:     "access",
	}
	token, _ := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("fakeapi"))
	return token
}

func (s *Server) count(c *gin.Context) {
	route := c.Request.Method + " " + c.FullPath()

	s.mu.Lock()
	s.hits[route]++
	status := s.failures[route]
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if status != 0 {
		c.AbortWithStatus(status)
		c.Writer.WriteString(http.StatusText(status))
		return
	}
	c.Next()
}

func (s *Server) listRooms(params domain.SearchParams) []domain.RoomCardInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(params.Q)
	var matched []*room
	for _, r := range s.rooms {
		field := r.Name
		if params.Condition == domain.ConditionHost {
			field = r.HostNickname
		}
		if q == "" || strings.Contains(strings.ToLower(field), q) {
			matched = append(matched, r)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.CreatedAt == b.CreatedAt {
			return a.ID < b.ID
		}
		if params.Order == domain.OrderDateAsc {
			return a.CreatedAt < b.CreatedAt
		}
		return a.CreatedAt > b.CreatedAt
	})

	cards := make([]domain.RoomCardInfo, 0, len(matched))
	for _, r := range matched {
		card := domain.RoomCardInfo{
			RoomMetadata: domain.RoomMetadata{
				RoomID:          r.ID,
				RoomName:        r.Name,
				RoomDescription: r.Description,
				CreatedAt:       r.CreatedAt,
			},
			HostNickname: r.HostNickname,
			NumOfMembers: len(r.members),
		}
		cards = append(cards, card)
		if s.echoDuplicate {
			cards = append(cards, card)
		}
	}
	return cards
}
