// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 核心概念：
// - **Trace**：一个完整的请求链路，由TraceID贯穿
// - **Span**：一个操作单元（HTTP处理、借书事务、SQL查询），
//   记录开始/结束时间、耗时、状态
// - **SpanContext**：跨组件传递的元数据（TraceID、SpanID、ParentSpanID）
//
// 追踪示例：
//
//	Trace: 借书请求（TraceID=abc123）
//	├─ Span1: POST /api/v1/books/checkin/:id（12ms）
//	│  └─ Span2: lending.CheckIn 事务（9ms）← 包含CAS更新和三次写入
//	│  └─ Span3: 事件发布（1ms）
//
// 使用方式：
//
//	shutdown, err := tracing.InitTracer("library-api", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "library-api", "CheckIn")
//	defer span.End()
//
// 日志关联：用ExtractTraceID(ctx)把TraceID写进日志，
// 即可从一条慢日志跳到Jaeger里的完整链路。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中分组显示）
//   - endpoint: OTLP gRPC端点（如 localhost:4317）
//
// 返回shutdown函数，程序退出前必须调用，否则可能丢失最后一批Span。
//
// 设计要点：
// 1. 使用OTLP协议而非Jaeger原生协议，厂商中立，可切换Zipkin/Datadog
// 2. 采样策略：开发环境AlwaysSample（100%），
//    生产环境建议 sdktrace.TraceIDRatioBased(0.01)
// 3. BatchSpanProcessor批量发送，性能优于SimpleSpanProcessor
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// OTLP gRPC Exporter（默认端口4317）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 本地Collector不走TLS
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// Resource描述产生遥测数据的实体，属性附加到所有Span上
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 全局Provider：业务代码直接otel.Tracer()获取，
	// 第三方库（HTTP、gRPC）也自动使用
	otel.SetTracerProvider(tp)

	// 上下文传播器：W3C Trace Context（traceparent头）+ Baggage
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// ctx包含父Span时新Span自动成为子Span，否则成为根Span。
// 必须用返回的ctx调用下游函数，否则无法构建调用树。
//
// Span命名用操作名（CheckIn、SearchByTitle），
// 动态值（book_id等）放到span.SetAttributes里，不要拼进Span名。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
