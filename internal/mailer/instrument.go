package mailer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/osa911/apexdrive/internal/mailer"

// Observer receives the duration and outcome of every send.
type Observer interface {
	ObserveMailSend(d time.Duration, err error)
}

type instrumented struct {
	next     Transport
	name     string
	tracer   trace.Tracer
	observer Observer
}

// Instrument wraps t with a tracing span per send and reports timings to
// observer, which may be nil.
func Instrument(t Transport, name string, observer Observer) Transport {
	return &instrumented{
		next:     t,
		name:     name,
		tracer:   otel.Tracer(tracerName),
		observer: observer,
	}
}

func (i *instrumented) Send(ctx context.Context, msg Message) error {
	ctx, span := i.tracer.Start(ctx, "mailer.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("mail.transport", i.name)),
	)
	defer span.End()

	start := time.Now()
	err := i.next.Send(ctx, msg)
	if i.observer != nil {
		i.observer.ObserveMailSend(time.Since(start), err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
	}
	return err
}
