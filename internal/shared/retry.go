package shared

import "context"

// RetryOnce runs fn and, on failure, retries exactly once. Read queries
// against the backend go through this at the service layer; mutations never
// do, so a duplicate create can not be issued by the retry path.
func RetryOnce[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	value, err := fn(ctx)
	if err == nil {
		return value, nil
	}
	if ctx.Err() != nil {
		return value, err
	}
	return fn(ctx)
}
