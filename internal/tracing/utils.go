package tracing

import (
	"context"
	"encoding/json"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/neozeit/dmarcscope/internal/utils"
)

const (
	SpanTagDomain    = "domain"
	SpanTagRunId     = "run-id"
	SpanTagComponent = "component"
)

const (
	SpanTagComponentElasticRepository = "elasticsearchRepository"
	SpanTagComponentService           = "service"
	SpanTagComponentRenderer          = "renderer"
	SpanTagComponentAssembler         = "assembler"
	SpanTagComponentStorage           = "storage"
)

func StartTracerSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
	return serverSpan, opentracing.ContextWithSpan(ctx, serverSpan)
}

func setDefaultSpanTags(ctx context.Context, span opentracing.Span) {
	domain := utils.GetDomainFromContext(ctx)
	runId := utils.GetRunIdFromContext(ctx)
	if domain != "" {
		span.SetTag(SpanTagDomain, domain)
	}
	if runId != "" {
		span.SetTag(SpanTagRunId, runId)
	}
}

func SetDefaultServiceSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentService(span)
}

func SetDefaultElasticRepositorySpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentElasticRepository(span)
}

func SetDefaultRendererSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentRenderer(span)
}

func SetDefaultAssemblerSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentAssembler(span)
}

func SetDefaultStorageSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentStorage(span)
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	// Log the error with the fields
	ext.LogError(span, err, fields...)
}

func LogObjectAsJson(span opentracing.Span, name string, object any) {
	if object == nil {
		span.LogFields(log.String(name, "nil"))
	}
	jsonObject, err := json.Marshal(object)
	if err == nil {
		span.LogFields(log.String(name, string(jsonObject)))
	} else {
		span.LogFields(log.Object(name, object))
	}
}

func TagComponentElasticRepository(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentElasticRepository)
}

func TagComponentService(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentService)
}

func TagComponentRenderer(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentRenderer)
}

func TagComponentAssembler(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentAssembler)
}

func TagComponentStorage(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentStorage)
}

func TagDomain(span opentracing.Span, domain string) {
	if domain != "" {
		span.SetTag(SpanTagDomain, domain)
	}
}
