// Package http serves the local control API that presentation front-ends use
// to read snapshots and post user actions.
package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dkeye/VoiceClient/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ControlTokenMiddleware requires "Authorization: Bearer <token>" when a
// token is configured.
func ControlTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid control token"})
			return
		}
		c.Next()
	}
}

func SetupRouter(cfg *config.Config, ctrl *Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.Use(ControlTokenMiddleware(cfg.ControlToken))

	api.GET("/status", ctrl.Status)
	api.GET("/view", ctrl.Snapshot)
	api.DELETE("/view/notices", ctrl.ClearNotices)
	api.PUT("/language", ctrl.SetLanguage)

	api.POST("/login", ctrl.Login)
	api.POST("/register", ctrl.Register)
	api.POST("/logout", ctrl.Logout)

	api.POST("/lists/refresh", ctrl.RefreshLists)
	api.POST("/rooms/:id/join", ctrl.JoinRoom)
	api.POST("/room/leave", ctrl.LeaveRoom)
	api.POST("/room/messages", ctrl.SendChatMessage)

	api.POST("/friends/requests", ctrl.SendFriendRequest)
	api.POST("/friends/requests/:id", ctrl.RespondToFriendRequest)
	api.DELETE("/friends/:id", ctrl.DeleteFriend)
	api.POST("/friends/:id/chat", ctrl.QuickChat)

	api.POST("/voice/start", ctrl.StartVoice)
	api.PUT("/voice/mute", ctrl.SetMute)
	api.POST("/voice/hangup", ctrl.HangUp)

	api.POST("/invitations/:id", ctrl.ResolveInvitation)

	admin := api.Group("/admin")
	admin.POST("/panel/open", ctrl.OpenAdminPanel)
	admin.POST("/panel/close", ctrl.CloseAdminPanel)
	admin.POST("/users/refresh", ctrl.AdminGetAllUsers)
	admin.POST("/rooms/refresh", ctrl.AdminGetAllRooms)
	admin.POST("/users", ctrl.AdminCreateUser)
	admin.DELETE("/users/:id", ctrl.AdminDeleteUser)
	admin.DELETE("/rooms/:id", ctrl.AdminDeleteRoom)
	admin.POST("/shutdown", ctrl.AdminShutdownServer)
	admin.PUT("/port", ctrl.AdminChangePort)

	log.Info().Str("module", "adapters.http").Bool("token", cfg.ControlToken != "").Msg("router setup")
	return r
}
