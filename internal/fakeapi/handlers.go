package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/pkg/middleware"
	"github.com/weiawesome/momentroom/pkg/response"
)

const maxUploadMemory = 32 << 20

// SearchRooms lists rooms.
func (s *Server) SearchRooms(c *gin.Context) {
	params := domain.SearchParams{
		Q:         c.Query(domain.FieldQuery),
		Condition: domain.Condition(c.DefaultQuery(domain.FieldCondition, string(domain.ConditionRoom))),
		Order:     domain.Order(c.DefaultQuery(domain.FieldOrder, string(domain.OrderDateDesc))),
	}
	if !params.Condition.Valid() || !params.Order.Valid() {
		response.BadRequest(c, "invalid search parameters")
		return
	}

	response.Success(c, s.listRooms(params))
}

// GetRoom returns a room as seen by the caller.
func (s *Server) GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)

	s.mu.Lock()
	r, found := s.rooms[id]
	var info domain.RoomInfo
	if found {
		info = domain.RoomInfo{
			RoomID:          r.ID,
			RoomName:        r.Name,
			RoomDescription: r.Description,
			CreatedAt:       r.CreatedAt,
			IsMember:        userID != "" && r.members[userID],
		}
		if info.IsMember {
			info.RoomDetail = &domain.RoomDetail{NumOfNewJoinRequests: len(r.joinRequests)}
		}
	}
	s.mu.Unlock()

	if !found {
		response.NotFound(c, "room not found")
		return
	}

	response.Success(c, info)
}

// RequestJoin records a join request from the caller.
func (s *Server) RequestJoin(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)

	s.mu.Lock()
	r, found := s.rooms[id]
	member := found && r.members[userID]
	if found && !member && !contains(r.joinRequests, userID) {
		r.joinRequests = append(r.joinRequests, userID)
	}
	s.mu.Unlock()

	switch {
	case !found:
		response.NotFound(c, "room not found")
	case member:
		response.Conflict(c, CodeAlreadyMember, "already a member")
	default:
		response.Created(c, domain.JoinRequestResult{RoomID: id, Status: "pending"})
	}
}

// CreateMoment stores a multipart moment upload from a member.
func (s *Server) CreateMoment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)

	s.mu.Lock()
	r, found := s.rooms[id]
	member := found && r.members[userID]
	s.mu.Unlock()

	if !found {
		response.NotFound(c, "room not found")
		return
	}
	if !member {
		response.Error(c, http.StatusForbidden, CodeForbidden, "members only")
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	upload := Upload{RoomID: id, Content: c.Request.FormValue("content")}
	for _, fh := range c.Request.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		upload.Images = append(upload.Images, Image{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	s.mu.Lock()
	momentID := s.nextMomentID
	s.nextMomentID++
	urls := make([]string, len(upload.Images))
	for i, img := range upload.Images {
		urls[i] = fmt.Sprintf("/media/moments/%d/%d-%s", momentID, i, img.Filename)
	}
	s.moments[momentID] = &domain.MomentInfo{
		MomentID:  momentID,
		RoomID:    id,
		Content:   upload.Content,
		ImageURLs: urls,
		Nickname:  middleware.GetNickname(c),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.uploads = append(s.uploads, upload)
	s.mu.Unlock()

	response.Created(c, domain.CreateMomentResult{MomentID: momentID})
}

// GetMoment returns a moment.
func (s *Server) GetMoment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	m, found := s.moments[id]
	var info domain.MomentInfo
	if found {
		info = *m
	}
	s.mu.Unlock()

	if !found {
		response.NotFound(c, "moment not found")
		return
	}

	response.Success(c, info)
}

// Signup registers an account, rejecting taken emails and nicknames.
func (s *Server) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Nickname) == "" {
		response.BadRequest(c, "missing fields")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, req.Email) {
			response.Conflict(c, response.CodeEmailTaken, "duplicated email")
			return
		}
	}
	for _, a := range s.accounts {
		if a.Nickname == req.Nickname {
			response.Conflict(c, response.CodeNicknameTaken, "duplicated nickname")
			return
		}
	}

	s.accounts = append(s.accounts, account{req})
	response.Created(c, gin.H{"email": req.Email, "nickname": req.Nickname})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
