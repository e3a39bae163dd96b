package server

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/davicafu/hexacms/pkg/utils"
)

// RequestLogger registra cada petición con zap al terminar.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("💥 Petición fallida", append(fields, zap.String("errors", c.Errors.String()))...)
		case status >= http.StatusBadRequest:
			log.Warn("⚠️ Petición rechazada", fields...)
		default:
			log.Info("➡️ Petición", fields...)
		}
	}
}

// Recovery convierte un panic en un 500 con el cuerpo de error habitual.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		log.Error("🔥 Panic recuperado", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
		utils.SendInternalServerError(c, "Internal server error")
	})
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}

// CORS adapta rs/cors a gin. Las preflight terminan aquí con 204.
func CORS(opts cors.Options) gin.HandlerFunc {
	handler := cors.New(opts)
	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "Authorization"}
)

// AdminCORS solo admite los orígenes configurados y envía credenciales.
func AdminCORS(origins []string) gin.HandlerFunc {
	return CORS(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   corsHeaders,
		AllowCredentials: true,
		MaxAge:           3600,
	})
}

// UserCORS admite cualquier origen, sin credenciales.
func UserCORS() gin.HandlerFunc {
	return CORS(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: corsMethods,
		AllowedHeaders: corsHeaders,
	})
}

// RateLimit limita por IP. Con rps <= 0 queda deshabilitado y devuelve nil.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return nil
	}

	lmt := tollbooth.NewLimiter(rps, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})
	if burst > 0 {
		lmt.SetBurst(burst)
	}
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later")

	return func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			utils.SendError(c, httpError.StatusCode, httpError.Message)
			return
		}
		c.Next()
	}
}
