// Package cache stores transcription results keyed by the audio content that produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/rs/zerolog"
)

// Store is a byte-oriented key-value cache with bounded size and entry TTL.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte)

	// Len reports how many live entries the store holds.
	Len(ctx context.Context) int

	// Close releases connections held by the store.
	Close() error
}

// Logger receives backend failures that the Store interface swallows.
type Logger interface {
	Error(msg string, err error)
}

type zerologAdapter struct {
	logger zerolog.Logger
}

func (z zerologAdapter) Error(msg string, err error) {
	z.logger.Error().Err(err).Msg(msg)
}

// NewZerologLogger adapts a zerolog logger to the cache Logger interface.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return zerologAdapter{logger: logger.With().Str("component", "cache").Logger()}
}

// ContentKey hashes r and returns a key namespaced by the given qualifiers.
func ContentKey(r io.Reader, qualifiers ...string) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	key := hex.EncodeToString(h.Sum(nil))
	for _, q := range qualifiers {
		key += ":" + q
	}
	return key, nil
}
