// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inject

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-arcade/menuroute/pkg/trace"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// RedisHook implements redis.Hook for OpenTelemetry tracing
type RedisHook struct {
	// WithArgs records the full command line, values included
	WithArgs bool
}

var _ redis.Hook = (*RedisHook)(nil)

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		ctx, span := trace.StartSpan(ctx, "redis."+cmd.Name(),
			oteltrace.WithSpanKind(oteltrace.SpanKindClient))
		defer span.End()

		span.SetAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", cmd.Name()),
		)
		if h.WithArgs {
			span.SetAttributes(attribute.String("db.statement", cmd.String()))
		}

		start := time.Now()
		err := next(ctx, cmd)
		span.SetAttributes(attribute.Int64("db.redis.duration_ms", time.Since(start).Milliseconds()))
		finishRedisSpan(span, err)
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, span := trace.StartSpan(ctx, "redis.pipeline",
			oteltrace.WithSpanKind(oteltrace.SpanKindClient))
		defer span.End()

		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
		}
		span.SetAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", "pipeline"),
			attribute.String("db.redis.pipeline.commands", strings.Join(names, " ")),
		)

		err := next(ctx, cmds)
		failed := 0
		for _, cmd := range cmds {
			if e := cmd.Err(); e != nil && !errors.Is(e, redis.Nil) {
				failed++
			}
		}
		if failed > 0 {
			span.SetStatus(codes.Error, fmt.Sprintf("%d commands failed", failed))
			return err
		}
		finishRedisSpan(span, err)
		return err
	}
}

// redis.Nil is a cache miss, not a failure.
func finishRedisSpan(span oteltrace.Span, err error) {
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(err, redis.Nil):
		span.SetAttributes(attribute.Bool("db.redis.nil", true))
		span.SetStatus(codes.Ok, "")
	default:
		trace.RecordError(span, err)
	}
}

// RegisterRedisHook registers the OpenTelemetry hook to Redis client
func RegisterRedisHook(client redis.UniversalClient, withArgs bool) {
	client.AddHook(&RedisHook{WithArgs: withArgs})
}
