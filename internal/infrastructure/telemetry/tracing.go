package telemetry

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/rafabene/cwsite-users/internal/infrastructure/config"
)

// ShutdownFunc descarrega spans pendentes e encerra o provider
type ShutdownFunc func(context.Context) error

// Setup inicializa o tracing OpenTelemetry
//
// Tracing é opcional: com OTEL_ENDPOINT vazio nenhum provider global é
// registrado e o shutdown retornado não faz nada.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Middleware envolve o handler HTTP criando um span por requisição
// Sem provider registrado os spans são no-op. O nome inicial é só o método;
// RouteSpanName troca pelo template da rota depois do roteamento
func Middleware(next http.Handler, serviceName string, opts ...otelhttp.Option) http.Handler {
	opts = append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	}, opts...)
	return otelhttp.NewHandler(next, serviceName, opts...)
}

// RouteSpanName nomeia o span da requisição pelo template da rota (GET /user/id/:id),
// mantendo a cardinalidade limitada ao número de rotas
func RouteSpanName() gin.HandlerFunc {
	return func(c *gin.Context) {
		if route := c.FullPath(); route != "" {
			span := trace.SpanFromContext(c.Request.Context())
			span.SetName(c.Request.Method + " " + route)
			span.SetAttributes(semconv.HTTPRoute(route))
		}
		c.Next()
	}
}
