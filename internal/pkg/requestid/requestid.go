package requestid

import (
	"context"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

type key struct{}

func New() string {
	return uuid.New().String()
}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

func From(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}
