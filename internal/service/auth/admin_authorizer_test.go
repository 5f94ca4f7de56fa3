package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/internal/domain"
)

func TestOwnerAuthorizer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := NewOwnerAuthorizer("owner-id", logger)
	ctx := context.Background()

	assert.True(t, a.IsAdmin("owner-id"))
	assert.False(t, a.IsAdmin("someone-else"))
	assert.NoError(t, a.CanAdminister(ctx, "owner-id"))
	assert.ErrorIs(t, a.CanAdminister(ctx, "someone-else"), domain.ErrForbidden)
	assert.ErrorIs(t, a.CanAdminister(ctx, ""), domain.ErrUnauthorized)
}

func TestOwnerAuthorizer_UnconfiguredLocksEveryone(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := NewOwnerAuthorizer("", logger)

	assert.False(t, a.IsAdmin(""))
	assert.ErrorIs(t, a.CanAdminister(context.Background(), "anyone"), domain.ErrForbidden)
}
