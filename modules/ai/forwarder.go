package ai

import (
	"context"
	"strings"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// AnswerCache stores answers keyed by question. Implemented by cache.Cache.
type AnswerCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Forwarder answers questions with the first word of a model reply.
type Forwarder struct {
	gen     Generator
	cache   AnswerCache // nil disables caching
	sfGroup singleflight.Group
	logger  types.Logger
}

// NewForwarder creates a forwarder. cache may be nil.
func NewForwarder(gen Generator, cache AnswerCache, logger types.Logger) *Forwarder {
	return &Forwarder{gen: gen, cache: cache, logger: logger}
}

// Ask returns the one-word answer for question and whether it came from the cache.
// Answers are keyed on the exact question text sent to the model.
// Cache failures are logged and bypassed.
func (f *Forwarder) Ask(ctx context.Context, question string) (string, bool, error) {
	if strings.TrimSpace(question) == "" {
		return "", false, operation.NewInputError(operation.MsgAIQuestion)
	}
	key := cacheKey(question)

	if f.cache != nil {
		var cached string
		found, err := f.cache.Get(ctx, key, &cached)
		if err != nil {
			f.logger.Warn("Answer cache read failed", "error", err)
		}
		if found {
			f.logger.Debug("Answer cache hit", "key", key)
			return cached, true, nil
		}
	}

	// Concurrent identical questions share one upstream call and the first caller's ctx.
	val, err, _ := f.sfGroup.Do(key, func() (any, error) {
		resp, err := f.gen.Generate(ctx, question)
		if err != nil {
			return nil, err
		}
		answer := FirstWord(resp)
		if f.cache != nil {
			if err := f.cache.Set(ctx, key, answer); err != nil {
				f.logger.Warn("Answer cache write failed", "error", err)
			}
		}
		return answer, nil
	})
	if err != nil {
		return "", false, operation.NewUpstreamError(err.Error(), err)
	}
	return val.(string), false, nil
}

// cacheKey maps a question to a fixed-length key.
func cacheKey(question string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(question)).String()
}
