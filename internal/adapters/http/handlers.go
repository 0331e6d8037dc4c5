package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/app/orch"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Loop runs fn on the client event loop and waits for its result.
type Loop interface {
	Do(ctx context.Context, fn func() error) error
}

// Controller turns HTTP requests into orchestrator calls on the event loop.
type Controller struct {
	Loop Loop
	Orch *orch.Orchestrator
	View *ViewState
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, i18n.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, orch.ErrNotAdmin), errors.Is(err, core.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, app.ErrInvitationNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, signal.ErrChannelNotOpen), errors.Is(err, core.ErrLoopStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// run executes fn on the loop and writes 204 or the mapped error.
func (ctl *Controller) run(c *gin.Context, fn func() error) {
	if err := ctl.Loop.Do(c.Request.Context(), fn); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (ctl *Controller) Status(c *gin.Context) {
	var st orch.Status
	if err := ctl.Loop.Do(c.Request.Context(), func() error {
		st = ctl.Orch.Status()
		return nil
	}); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (ctl *Controller) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.View.Snapshot())
}

func (ctl *Controller) ClearNotices(c *gin.Context) {
	ctl.View.ClearNotices()
	c.Status(http.StatusNoContent)
}

type languageRequest struct {
	Language string `json:"language"`
}

func (ctl *Controller) SetLanguage(c *gin.Context) {
	var req languageRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()
	ctl.run(c, func() error { return ctl.Orch.SetLanguage(ctx, req.Language) })
}

func (ctl *Controller) Login(c *gin.Context) {
	var creds domain.Credentials
	if !bind(c, &creds) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.Login(context.WithoutCancel(c.Request.Context()), creds) })
}

func (ctl *Controller) Register(c *gin.Context) {
	var creds domain.Credentials
	if !bind(c, &creds) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.Register(context.WithoutCancel(c.Request.Context()), creds) })
}

func (ctl *Controller) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	ctl.run(c, func() error {
		ctl.Orch.Logout(ctx)
		return nil
	})
}

func (ctl *Controller) RefreshLists(c *gin.Context) {
	ctl.run(c, ctl.Orch.RefreshLists)
}

func (ctl *Controller) JoinRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.JoinRoom(domain.RoomID(id)) })
}

func (ctl *Controller) LeaveRoom(c *gin.Context) {
	ctl.run(c, ctl.Orch.LeaveRoom)
}

type chatRequest struct {
	Content string `json:"content"`
}

func (ctl *Controller) SendChatMessage(c *gin.Context) {
	var req chatRequest
	if !bind(c, &req) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.SendChatMessage(req.Content) })
}

type friendRequest struct {
	Username string `json:"username"`
}

func (ctl *Controller) SendFriendRequest(c *gin.Context) {
	var req friendRequest
	if !bind(c, &req) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.SendFriendRequest(req.Username) })
}

type answerRequest struct {
	Accept bool `json:"accept"`
}

func (ctl *Controller) RespondToFriendRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req answerRequest
	if !bind(c, &req) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.RespondToFriendRequest(id, req.Accept) })
}

func (ctl *Controller) DeleteFriend(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.DeleteFriend(domain.UserID(id)) })
}

func (ctl *Controller) QuickChat(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.QuickChat(domain.UserID(id)) })
}

func (ctl *Controller) StartVoice(c *gin.Context) {
	ctl.run(c, ctl.Orch.StartVoice)
}

type muteRequest struct {
	Muted bool `json:"muted"`
}

func (ctl *Controller) SetMute(c *gin.Context) {
	var req muteRequest
	if !bind(c, &req) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.SetMute(req.Muted) })
}

func (ctl *Controller) HangUp(c *gin.Context) {
	ctl.run(c, ctl.Orch.HangUp)
}

func (ctl *Controller) ResolveInvitation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}
	var req answerRequest
	if !bind(c, &req) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.ResolveInvitation(id, req.Accept) })
}

func (ctl *Controller) OpenAdminPanel(c *gin.Context) {
	ctl.run(c, ctl.Orch.OpenAdminPanel)
}

func (ctl *Controller) CloseAdminPanel(c *gin.Context) {
	ctl.run(c, ctl.Orch.CloseAdminPanel)
}

func (ctl *Controller) AdminGetAllUsers(c *gin.Context) {
	ctl.run(c, ctl.Orch.AdminGetAllUsers)
}

func (ctl *Controller) AdminGetAllRooms(c *gin.Context) {
	ctl.run(c, ctl.Orch.AdminGetAllRooms)
}

type createUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (ctl *Controller) AdminCreateUser(c *gin.Context) {
	var req createUserRequest
	if !bind(c, &req) {
		return
	}
	creds := domain.Credentials{Username: req.Username, Password: req.Password}
	ctl.run(c, func() error { return ctl.Orch.AdminCreateUser(creds, req.Role) })
}

func (ctl *Controller) AdminDeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.AdminDeleteUser(domain.UserID(id)) })
}

func (ctl *Controller) AdminDeleteRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.AdminDeleteRoom(domain.RoomID(id)) })
}

func (ctl *Controller) AdminShutdownServer(c *gin.Context) {
	ctl.run(c, ctl.Orch.AdminShutdownServer)
}

type portRequest struct {
	Port int `json:"port"`
}

func (ctl *Controller) AdminChangePort(c *gin.Context) {
	var req portRequest
	if !bind(c, &req) {
		return
	}
	ctl.run(c, func() error { return ctl.Orch.AdminChangePort(req.Port) })
}
