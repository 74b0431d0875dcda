package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories/memory"
)

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, CreateDefaultData(ctx, store, zerolog.Nop()))

	count, err := store.CountPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultCatalog)), count)

	senate, err := store.GetPosition(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Senate", senate.Name)
	assert.Equal(t, 3, senate.VoteLimit)

	voter, err := store.GetVoter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "20260001", voter.StudentID)
	assert.False(t, voter.HasVoted)
}

func TestCreateDefaultData_SkipsExistingCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.CreatePosition(ctx, &appModels.Position{Name: "Treasurer", VoteLimit: 1}))

	require.NoError(t, CreateDefaultData(ctx, store, zerolog.Nop()))

	count, err := store.CountPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = store.GetVoter(ctx, 1)
	assert.Error(t, err)
}
