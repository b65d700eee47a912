package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("question", "by_id", "01HTEST00000000000000000AB")
	assert.Equal(t, "quizforge:question:by_id:01HTEST00000000000000000AB", key)
}

func TestGenerateCacheKeyWithParams(t *testing.T) {
	key := GenerateCacheKey("question", "list", "all", "physics", "easy")
	assert.Equal(t, "quizforge:question:list:all:physics_easy", key)
}
