package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "grading:rules:level-1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "grading:rules:level-1", []string{"A"}, time.Minute))
	assert.NoError(t, repo.Delete(ctx, "grading:rules:level-1"))
	assert.NoError(t, repo.DeleteByPattern(ctx, "grading:*"))
	assert.NoError(t, repo.Close())
}
