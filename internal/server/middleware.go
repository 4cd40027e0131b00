package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/jira-mcp/internal/metrics"
)

type requestIDKey struct{}

// RequestID returns the id assigned to the current tool invocation, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// toolMiddleware tags each tool call with a request id, then logs and
// measures it. Error results count as failures even though the handler
// itself returned no Go error.
func toolMiddleware(logger *zap.Logger, m *metrics.Metrics) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			requestID := uuid.NewString()
			ctx = context.WithValue(ctx, requestIDKey{}, requestID)
			tool := req.Params.Name

			start := time.Now()
			result, err := next(ctx, req)
			elapsed := time.Since(start)

			outcome := metrics.OutcomeSuccess
			if err != nil || (result != nil && result.IsError) {
				outcome = metrics.OutcomeError
			}
			m.ObserveToolCall(tool, outcome, elapsed)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("tool", tool),
				zap.Duration("duration", elapsed),
				zap.String("outcome", outcome),
			}
			switch {
			case err != nil:
				logger.Error("tool call failed", append(fields, zap.Error(err))...)
			case outcome == metrics.OutcomeError:
				logger.Warn("tool call returned error result", fields...)
			default:
				logger.Info("tool call", fields...)
			}

			return result, err
		}
	}
}
