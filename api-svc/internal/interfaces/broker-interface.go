package interfaces

import "context"

type ProducerHandler interface {
	PublishMessage(ctx context.Context, key, value []byte) error
}
