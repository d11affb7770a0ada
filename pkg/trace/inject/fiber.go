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
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/menuroute/pkg/trace"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// FiberMiddleware returns a Fiber middleware for OpenTelemetry tracing.
// The span context is stored in c.UserContext() for handlers and the access log.
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if ctx == nil {
			// fasthttp.RequestCtx 不是 context.Context
			ctx = context.Background()
		}

		headers := make(map[string]string)
		c.Request().Header.VisitAll(func(key, value []byte) {
			headers[string(key)] = string(value)
		})
		ctx = otel.GetTextMapPropagator().Extract(ctx, &headerCarrier{headers: headers})

		start := time.Now()
		ctx, span := trace.StartSpan(ctx, c.Method()+" "+c.Path(),
			oteltrace.WithSpanKind(oteltrace.SpanKindServer))
		defer span.End()

		c.SetUserContext(ctx)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Method()),
			attribute.String("http.scheme", c.Protocol()),
			attribute.String("http.target", string(c.Request().URI().RequestURI())),
		}
		if id, ok := c.Locals("request_id").(string); ok && id != "" {
			attrs = append(attrs, attribute.String("http.request.id", id))
		}
		if userAgent := c.Get("User-Agent"); userAgent != "" {
			attrs = append(attrs, attribute.String("http.user_agent", userAgent))
		}
		span.SetAttributes(attrs...)

		err := c.Next()

		statusCode := c.Response().StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", statusCode),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)

		switch {
		case err != nil:
			trace.RecordError(span, err)
		case statusCode >= 400:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
		default:
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}

// headerCarrier adapts HTTP request headers to propagation.TextMapCarrier
type headerCarrier struct {
	headers map[string]string
}

func (c *headerCarrier) Get(key string) string {
	if v, ok := c.headers[key]; ok {
		return v
	}
	// fasthttp 规范化了 header 名称
	for k, v := range c.headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	c.headers[key] = value
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for k := range c.headers {
		keys = append(keys, k)
	}
	return keys
}
