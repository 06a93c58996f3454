// Package kafkatrace propagates trace context across Kafka produce/consume
// boundaries using message headers.
//
// The package contains a single carrier type, MessageCarrier, which adapts a
// kafka-go message's header list to the tracer's text-map contract, plus two
// convenience helpers, Inject and Continue, that pair it with a tracer
// client. Header names and encodings are decided by the tracer's configured
// Adapter, exactly as for HTTP propagation; this package only supplies the
// carrier shape.
//
// # Producer Side
//
// Inject the active trace into every outbound message before writing it:
//
//	writer := &kafka.Writer{
//		Addr:  kafka.TCP("localhost:9092"),
//		Topic: "orders",
//	}
//
//	msg := kafka.Message{
//		Key:   []byte(orderID),
//		Value: payload,
//	}
//	kafkatrace.Inject(ctx, client, &msg)
//
//	if err := writer.WriteMessages(ctx, msg); err != nil {
//		log.ErrorWithContext(ctx, "publish failed", err, nil)
//	}
//
// Injection is best-effort: when the tracer is disabled or no trace is
// active, the message is left untouched and the publish proceeds.
//
// # Consumer Side
//
// Continue the producer's trace when handling each fetched message:
//
//	reader := kafka.NewReader(kafka.ReaderConfig{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "orders",
//		GroupID: "billing",
//	})
//
//	for {
//		msg, err := reader.FetchMessage(ctx)
//		if err != nil {
//			break
//		}
//
//		msgCtx, _, err := kafkatrace.Continue(ctx, client, "orders.consume", &msg)
//		if err != nil {
//			// No usable trace headers: start fresh instead.
//			msgCtx, _, _ = client.StartTrace(ctx, "orders.consume")
//		}
//
//		handle(msgCtx, msg)
//
//		msgCtx, _, _ = client.FinishTrace(msgCtx)
//		_ = reader.CommitMessages(msgCtx, msg)
//	}
//
// The consumer's root span carries the producer's span as its parent, so the
// hop shows up as one continuous trace. Sampling priority and baggage cross
// the boundary along with the ids, adapter permitting.
//
// # Using the Carrier Directly
//
// MessageCarrier also works with the lower-level propagation operations when
// the helpers don't fit, for instance to inspect an inbound context without
// starting a trace:
//
//	sc, err := client.DistributedContext(kafkatrace.NewMessageCarrier(&msg))
//	if err == nil {
//		log.Info("message carries trace", nil, map[string]interface{}{
//			"trace_id": sc.TraceID,
//		})
//	}
package kafkatrace
