package inject

import (
	"context"
	"time"

	"github.com/go-arcade/menuroute/pkg/trace"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// HTTPRequest 对 HTTP 客户端请求进行埋点
// fn: 执行请求的函数，返回响应状态码、响应大小和错误
func HTTPRequest(ctx context.Context, method, url string, fn func(ctx context.Context) (statusCode int, responseSize int64, err error)) (int, int64, error) {
	ctx, span := trace.StartSpan(ctx, "http.request",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	defer span.End()

	startTime := time.Now()
	trace.AddSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)

	statusCode, responseSize, err := fn(ctx)

	trace.AddSpanAttributes(span,
		attribute.Int("http.status_code", statusCode),
		attribute.Int64("http.response.size", responseSize),
		attribute.Int64("http.duration_ms", time.Since(startTime).Milliseconds()),
	)

	if err != nil {
		trace.RecordError(span, err)
		return statusCode, responseSize, err
	}
	if statusCode >= 400 {
		trace.SetSpanStatus(span, codes.Error, "")
	} else {
		trace.SetSpanStatus(span, codes.Ok, "")
	}
	return statusCode, responseSize, nil
}

// InjectRequest writes the span context carried by ctx into the outgoing request headers.
func InjectRequest(ctx context.Context, req *resty.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
