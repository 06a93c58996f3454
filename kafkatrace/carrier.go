package kafkatrace

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/aalemi-dev/tracelab/tracer"
)

// MessageCarrier adapts a kafka-go message's header list to the tracer's
// text-map carrier contract, so trace context rides produce/consume
// boundaries the same way it rides HTTP headers.
//
// The carrier holds a pointer to the message and writes headers in place;
// wrap the message before handing it to a kafka.Writer.
type MessageCarrier struct {
	msg *kafka.Message
}

var (
	_ tracer.TextMapWriter = MessageCarrier{}
	_ tracer.TextMapReader = MessageCarrier{}
)

// NewMessageCarrier wraps msg for propagation.
func NewMessageCarrier(msg *kafka.Message) MessageCarrier {
	return MessageCarrier{msg: msg}
}

// Set implements tracer.TextMapWriter. Repeated keys overwrite: any
// existing header with the same key is dropped before the new value is
// appended, so re-injecting into a message never accumulates duplicates.
func (c MessageCarrier) Set(key, val string) {
	for i := 0; i < len(c.msg.Headers); i++ {
		if c.msg.Headers[i].Key == key {
			c.msg.Headers = append(c.msg.Headers[:i], c.msg.Headers[i+1:]...)
			i--
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{
		Key:   key,
		Value: []byte(val),
	})
}

// ForeachKey implements tracer.TextMapReader, visiting every header in
// order. Header values are passed to the handler as strings.
func (c MessageCarrier) ForeachKey(handler func(key, val string) error) error {
	for _, h := range c.msg.Headers {
		if err := handler(h.Key, string(h.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Inject writes the active trace position on ctx into msg's headers through
// the client's adapter. It is best-effort like InjectContext itself: with a
// disabled tracer, no active trace or span, or no adapter, the message is
// left exactly as it was and the produce path proceeds.
func Inject(ctx context.Context, client tracer.Tracer, msg *kafka.Message, opts ...tracer.Option) {
	client.InjectContext(ctx, NewMessageCarrier(msg), opts...)
}

// Continue resumes the trace carried in msg's headers: it extracts the
// producer's span context through the client's adapter and starts a
// continued trace on ctx whose root span is named name.
//
// Errors: tracer.ErrTracerDisabled, tracer.ErrTraceAlreadyPresent,
// tracer.ErrInvalidContext when no adapter is configured, or the adapter's
// extraction error when the headers are absent or malformed.
func Continue(ctx context.Context, client tracer.Tracer, name string, msg *kafka.Message, opts ...tracer.Option) (context.Context, *tracer.Trace, error) {
	sc, err := client.DistributedContext(NewMessageCarrier(msg), opts...)
	if err != nil {
		return ctx, nil, err
	}
	return client.ContinueTrace(ctx, name, sc, opts...)
}
