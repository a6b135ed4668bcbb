package interfaces

import "context"

type ConsumerHandler interface {
	HandleMessage(ctx context.Context, key, value []byte) error
}
