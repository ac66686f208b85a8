package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader     = "Idempotency-Key"
	idempotencyReplayed   = "Idempotency-Replayed"
	idempotencyNamespace  = "idempotency"
	defaultIdempotencyTTL = 24 * time.Hour
)

// recordedResponse is what a replay sends back.
type recordedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder tees the handler's output so it can be stored after the fact.
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// replayStore keeps recorded responses in redis under one namespace.
type replayStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s replayStore) key(method, path, idempotencyKey string) string {
	return idempotencyNamespace + ":" + method + ":" + path + ":" + idempotencyKey
}

// load returns nil, nil when nothing is recorded under key.
func (s replayStore) load(ctx context.Context, key string) (*recordedResponse, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec recordedResponse
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s replayStore) save(ctx context.Context, key string, rec recordedResponse) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.ttl).Err()
}

// IdempotencyMiddleware replays the stored response of a POST or PATCH that
// carries an Idempotency-Key already seen for the same route. Bookings,
// assignments and cancellations are therefore safe to retry. A nil client
// disables the middleware; redis failures fall through to normal handling.
func IdempotencyMiddleware(redisClient *redis.Client, ttl time.Duration, logger *slog.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	store := replayStore{client: redisClient, ttl: ttl}

	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader(idempotencyHeader)
		if redisClient == nil || idempotencyKey == "" || !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := store.key(c.Request.Method, c.Request.URL.Path, idempotencyKey)

		rec, err := store.load(ctx, key)
		if err != nil {
			logger.WarnContext(ctx, "idempotency lookup failed",
				slog.String("key", idempotencyKey),
				slog.String("error", err.Error()),
			)
			c.Next()
			return
		}
		if rec != nil {
			c.Header(idempotencyReplayed, "true")
			c.Data(rec.Status, rec.ContentType, rec.Body)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		// 5xx stays retryable
		status := recorder.Status()
		if status < http.StatusOK || status >= http.StatusInternalServerError {
			return
		}
		err = store.save(ctx, key, recordedResponse{
			Status:      status,
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.buf.Bytes(),
		})
		if err != nil {
			logger.WarnContext(ctx, "idempotency store failed",
				slog.String("key", idempotencyKey),
				slog.String("error", err.Error()),
			)
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
