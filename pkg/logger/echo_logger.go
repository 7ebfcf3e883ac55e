package logger

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// UserIDContextKey is read from the echo context so access logs can carry
// the authenticated user.
const UserIDContextKey = "user_id"

var maskedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// NewEchoRequestLogger returns an access-log middleware writing to logger.
// /health and /metrics are not logged.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	config := middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
		HandleError: true,

		LogLatency:       true,
		LogProtocol:      true,
		LogRemoteIP:      true,
		LogMethod:        true,
		LogURI:           true,
		LogURIPath:       true,
		LogRoutePath:     true,
		LogRequestID:     true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,
		LogHeaders:       []string{"Content-Type", "Authorization", "Cookie"},
		LogQueryParams:   []string{"page", "limit", "business_area"},

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.protocol", v.Protocol),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.path", v.URIPath),
				zap.String("request.route", v.RoutePath),
				zap.String("request.user_agent", v.UserAgent),
				zap.String("request.request_id", v.RequestID),
				zap.String("request.content_length", v.ContentLength),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
				zap.Int64("response.response_size", v.ResponseSize),
			}

			if userID, ok := c.Get(UserIDContextKey).(uint); ok {
				fields = append(fields, zap.Uint("request.user_id", userID))
			}

			if len(v.Headers) > 0 {
				headers := make(map[string]string, len(v.Headers))
				for k, values := range v.Headers {
					if len(values) == 0 {
						continue
					}
					headers[k] = maskHeader(k, values[0])
				}
				fields = append(fields, zap.Any("request.headers", headers))
			}
			if len(v.QueryParams) > 0 {
				fields = append(fields, zap.Any("request.query_params", v.QueryParams))
			}

			level := zapcore.InfoLevel
			msg := "Request completed"
			switch {
			case v.Error != nil || v.Status >= 500:
				level, msg = zapcore.ErrorLevel, "Server error"
				if v.Error != nil {
					fields = append(fields, zap.Error(v.Error))
				}
			case v.Status >= 400:
				level, msg = zapcore.WarnLevel, "Client error"
			}
			logger.Check(level, msg).Write(fields...)
			return nil
		},
	}

	return middleware.RequestLoggerWithConfig(config)
}

func maskHeader(name, value string) string {
	if !maskedHeaders[http.CanonicalHeaderKey(name)] {
		return value
	}
	if len(value) > 15 {
		return value[:10] + "..." + value[len(value)-5:]
	}
	return "[MASKED]"
}

// WithEchoLogger routes echo's own logging through logger and installs an
// error handler that answers with the {success:false, error} envelope.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		he := apperrors.ToHTTPError(err)
		code := he.Code

		message, ok := he.Message.(string)
		if !ok || message == "" {
			message = http.StatusText(code)
		}

		if code >= http.StatusInternalServerError {
			logger.Error("HTTP error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("ip", c.RealIP()),
			)
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"success": false,
				"error":   message,
			})
		}
		if err != nil {
			logger.Error("Failed to send error response", zap.Error(err))
		}
	}
}

// EchoZapLogger implements echo.Logger on top of zap.
type EchoZapLogger struct {
	Logger *zap.Logger
	sugar  *zap.SugaredLogger
	level  log.Lvl
	prefix string
}

// NewEchoZapLogger wraps logger for echo.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	named := logger.Named("echo")
	return &EchoZapLogger{Logger: named, sugar: named.Sugar(), level: log.INFO}
}

func (l *EchoZapLogger) Output() io.Writer {
	return &zapWriter{logger: l.Logger}
}

func (l *EchoZapLogger) SetOutput(io.Writer) {}

func (l *EchoZapLogger) Level() log.Lvl {
	return l.level
}

func (l *EchoZapLogger) SetLevel(v log.Lvl) {
	l.level = v
}

func (l *EchoZapLogger) SetHeader(string) {}

func (l *EchoZapLogger) Prefix() string {
	return l.prefix
}

func (l *EchoZapLogger) SetPrefix(p string) {
	l.prefix = p
}

func (l *EchoZapLogger) Print(i ...interface{}) {
	l.sugar.Info(i...)
}

func (l *EchoZapLogger) Printf(format string, i ...interface{}) {
	l.sugar.Infof(format, i...)
}

func (l *EchoZapLogger) Printj(j log.JSON) {
	l.Logger.Info("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Debug(i ...interface{}) {
	l.sugar.Debug(i...)
}

func (l *EchoZapLogger) Debugf(format string, i ...interface{}) {
	l.sugar.Debugf(format, i...)
}

func (l *EchoZapLogger) Debugj(j log.JSON) {
	l.Logger.Debug("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Info(i ...interface{}) {
	l.sugar.Info(i...)
}

func (l *EchoZapLogger) Infof(format string, i ...interface{}) {
	l.sugar.Infof(format, i...)
}

func (l *EchoZapLogger) Infoj(j log.JSON) {
	l.Logger.Info("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Warn(i ...interface{}) {
	l.sugar.Warn(i...)
}

func (l *EchoZapLogger) Warnf(format string, i ...interface{}) {
	l.sugar.Warnf(format, i...)
}

func (l *EchoZapLogger) Warnj(j log.JSON) {
	l.Logger.Warn("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Error(i ...interface{}) {
	l.sugar.Error(i...)
}

func (l *EchoZapLogger) Errorf(format string, i ...interface{}) {
	l.sugar.Errorf(format, i...)
}

func (l *EchoZapLogger) Errorj(j log.JSON) {
	l.Logger.Error("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Fatal(i ...interface{}) {
	l.sugar.Fatal(i...)
}

func (l *EchoZapLogger) Fatalf(format string, i ...interface{}) {
	l.sugar.Fatalf(format, i...)
}

func (l *EchoZapLogger) Fatalj(j log.JSON) {
	l.Logger.Fatal("json_message", zap.Any("json", j))
}

func (l *EchoZapLogger) Panic(i ...interface{}) {
	l.sugar.Panic(i...)
}

func (l *EchoZapLogger) Panicf(format string, i ...interface{}) {
	l.sugar.Panicf(format, i...)
}

func (l *EchoZapLogger) Panicj(j log.JSON) {
	l.Logger.Panic("json_message", zap.Any("json", j))
}

type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}
