package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetAndConsume(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a@example.com", "123456", time.Minute))

	value, err := store.GetAndDelete(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "123456", value)

	// Consumed on first read.
	value, err = store.GetAndDelete(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Empty(t, value)
}

func TestMemoryStore_GetDoesNotConsume(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a@example.com", "123456", time.Minute))

	value, err := store.Get(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "123456", value)

	// Still present after a plain read.
	value, err = store.Get(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "123456", value)

	assert.NoError(t, store.Delete(ctx, "a@example.com"))

	value, err = store.Get(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Empty(t, value)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a@example.com", "123456", -time.Second))

	value, err := store.GetAndDelete(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Empty(t, value)

	value, err = store.Get(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Empty(t, value)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "a@example.com", "111111", time.Minute))
	assert.NoError(t, store.Set(ctx, "a@example.com", "222222", time.Minute))

	value, err := store.GetAndDelete(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "222222", value)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(6)
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.GreaterOrEqual(t, c, '0')
		assert.LessOrEqual(t, c, '9')
	}
}
