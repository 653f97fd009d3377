package config

import (
	"net/http"

	"eduplatform/middleware"
	"eduplatform/response"
	"eduplatform/services/logger"
	"eduplatform/services/notification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitApp builds the gin engine with the shared middleware stack, the
// websocket hub and the scheduler. Nothing is started here.
func InitApp(cfg *Config, log *zap.Logger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.Server.CORSOrigins)),
	)
	_ = router.SetTrustedProxies(nil)

	m := melody.New()
	c := cron.New()

	return router, m, c
}

func corsConfig(origins []string) cors.Config {
	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.HeaderRequestID)
	configCors.AddExposeHeaders(middleware.HeaderRequestID)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	configCors.AllowOriginFunc = func(origin string) bool {
		if len(allowed) == 0 {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
	return configCors
}

// InitWebSocket mounts GET /ws. Clients authenticate with ?token= (browsers
// cannot set headers on the upgrade) or a bearer header.
func InitWebSocket(router *gin.Engine, m *melody.Melody, tokens middleware.TokenParser, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = middleware.BearerToken(c)
		}
		if token == "" {
			response.Error(c, middleware.ErrMissingToken)
			return
		}
		info, err := tokens.ParseToken(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		keys := map[string]interface{}{notification.SessionUserKey: info.UserId}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			log.Warn("websocket upgrade failed for user %d: %v", info.UserId, err)
		}
	})

	m.HandleConnect(func(s *melody.Session) {
		if id, ok := s.Get(notification.SessionUserKey); ok {
			log.Debug("websocket connected: user %v", id)
		}
	})
	m.HandleDisconnect(func(s *melody.Session) {
		if id, ok := s.Get(notification.SessionUserKey); ok {
			log.Debug("websocket disconnected: user %v", id)
		}
	})
	m.HandleMessage(func(s *melody.Session, msg []byte) {
		if string(msg) == "ping" {
			_ = s.Write([]byte("pong"))
		}
	})

	log.Info("WebSocket initialized on /ws")
}

// Health pings the database.
func Health(db *Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{Success: false, Message: "database unavailable"})
			return
		}
		response.Success(c, gin.H{"status": "ok"})
	}
}
