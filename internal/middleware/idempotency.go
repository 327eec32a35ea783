package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
	idempotencyTTL    = 24 * time.Hour
)

// replayRecord is what a keyed POST leaves behind for its retries.
type replayRecord struct {
	Status      int             `json:"status"`
	ContentType string          `json:"contentType,omitempty"`
	Fingerprint string          `json:"fingerprint"`
	Body        json.RawMessage `json:"body"`
}

// captureWriter tees the handler's response body.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response of a POST whose
// Idempotency-Key was already seen on the same route. Reusing a key with a
// different body is rejected with 422. A nil store disables it.
func IdempotencyMiddleware(store redis.IdempotencyStoreInterface, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		clientKey := c.GetHeader(idempotencyHeader)
		if clientKey == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		fingerprint, err := fingerprintBody(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
			return
		}
		key := c.Request.Method + " " + c.FullPath() + " " + clientKey

		data, found, err := store.Get(ctx, key)
		if err != nil {
			logger.WarnContext(ctx, "idempotency lookup failed, serving request", "error", err)
			c.Next()
			return
		}
		if found {
			var rec replayRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				logger.WarnContext(ctx, "discarding corrupt idempotency record", "key", key, "error", err)
			} else if rec.Fingerprint != fingerprint {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
					"error": "Idempotency-Key already used with a different request body",
				})
				return
			} else {
				c.Header(replayedHeader, "true")
				c.Data(rec.Status, rec.ContentType, rec.Body)
				c.Abort()
				return
			}
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		// 5xx stays retryable.
		status := w.Status()
		if status < 200 || status >= 500 {
			return
		}
		payload, err := json.Marshal(replayRecord{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Fingerprint: fingerprint,
			Body:        w.body.Bytes(),
		})
		if err == nil {
			err = store.Set(ctx, key, payload, idempotencyTTL)
		}
		if err != nil {
			logger.WarnContext(ctx, "idempotency record not saved", "key", key, "error", err)
		}
	}
}

// fingerprintBody hashes the request body and puts it back for the handler.
func fingerprintBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return hex.EncodeToString(sha256.New().Sum(nil)), nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}
