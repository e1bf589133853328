package queue

import "context"

// Delivery is one raw push-channel message. Decoding into a domain event is
// the dispatcher's job so transport and merge logic stay separate.
type Delivery struct {
	Op   string
	Body []byte
}

// Subscription is one open stream of deliveries for a (recipient, entity
// class) pair. Events is closed when the stream ends; Err reports why.
type Subscription interface {
	Events() <-chan Delivery
	Err() error
	Close() error
}

type Channel interface {
	Open(ctx context.Context, recipientID, entityClass string) (Subscription, error)
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}
