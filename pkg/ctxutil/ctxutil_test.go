package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name   string
		ctx    context.Context
		wantID uuid.UUID
		wantOK bool
	}{
		{"set", WithUserID(context.Background(), id), id, true},
		{"empty context", context.Background(), uuid.Nil, false},
		{"nil uuid", WithUserID(context.Background(), uuid.Nil), uuid.Nil, false},
		{"wrong type", context.WithValue(context.Background(), userIDKey{}, id.String()), uuid.Nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := UserIDFromCtx(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got)
			assert.Equal(t, tt.wantID, ViewerFromCtx(tt.ctx))
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "req-123", RequestIDFromCtx(WithRequestID(context.Background(), "req-123")))
	assert.Empty(t, RequestIDFromCtx(context.Background()))
	assert.Empty(t, RequestIDFromCtx(context.WithValue(context.Background(), requestIDKey{}, 12345)))
}
