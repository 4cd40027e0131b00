package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Routes served by the HTTP transport.
const (
	MCPPath     = "/mcp"
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

// NewHTTPHandler mounts the streamable MCP endpoint next to health and
// metrics routes. The router trusts forwarding headers from any proxy, since
// the server is expected to run behind a tunnel or load balancer.
func NewHTTPHandler(s *server.MCPServer, gatherer prometheus.Gatherer, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(logger))
	if err := router.SetTrustedProxies([]string{"0.0.0.0/0", "::/0"}); err != nil {
		return nil, err
	}

	streamable := server.NewStreamableHTTPServer(s, server.WithEndpointPath(MCPPath))
	router.Any(MCPPath, gin.WrapH(streamable))

	router.GET(HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": Name,
			"version": Version,
		})
	})

	if gatherer != nil {
		router.GET(MetricsPath, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return router, nil
}

// accessLog logs one debug line per HTTP request.
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
