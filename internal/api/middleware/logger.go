package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig controls what the request logger adds to every request log line.
type LoggerConfig struct {
	Skipper           middleware.Skipper
	Level             zerolog.Level
	LogRequestBody    bool
	LogRequestHeader  bool
	LogRequestQuery   bool
	LogResponseBody   bool
	LogResponseHeader bool
}

type bodyDumpResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LoggerWithConfig attaches a request scoped zerolog logger to the request context, retrievable
// with util.LogFromContext, and logs every request once it has been handled.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			logger := log.With().
				Str("id", id).
				Str("host", req.Host).
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Str("ip", c.RealIP()).
				Logger()

			le := logger.WithLevel(config.Level)

			if config.LogRequestBody && req.Body != nil {
				reqBody, err := io.ReadAll(req.Body)
				if err == nil {
					req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
					le = le.Bytes("req_body", reqBody)
				}
			}

			if config.LogRequestHeader {
				le = le.Interface("req_header", req.Header)
			}

			if config.LogRequestQuery {
				le = le.Interface("req_query", req.URL.Query())
			}

			var resBody bytes.Buffer
			if config.LogResponseBody {
				mw := io.MultiWriter(res.Writer, &resBody)
				res.Writer = &bodyDumpResponseWriter{Writer: mw, ResponseWriter: res.Writer}
			}

			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			stop := time.Now()

			if config.LogResponseBody {
				le = le.Bytes("res_body", resBody.Bytes())
			}

			if config.LogResponseHeader {
				le = le.Interface("res_header", res.Header())
			}

			le.
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", stop.Sub(start)).
				Str("user_agent", req.UserAgent()).
				Msg("Request handled")

			// the error has already been handled above
			return nil
		}
	}
}
