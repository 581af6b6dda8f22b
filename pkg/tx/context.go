package tx

import "context"

type txCtxKey struct{}

func WithTx(ctx context.Context, t *Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, t)
}

func FromContext(ctx context.Context) (*Tx, bool) {
	t, ok := ctx.Value(txCtxKey{}).(*Tx)
	return t, ok && t != nil
}
