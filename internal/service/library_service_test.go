package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fellowship-server/internal/store"
)

func TestSaveAndList(t *testing.T) {
	svc := NewLibraryService(store.NewMemStore())
	ctx := context.Background()

	saved, err := svc.Save(ctx, 5, SavedContentInput{ContentType: "video", ContentID: "video1", Title: "Sunday Service"})
	require.NoError(t, err)
	require.NotNil(t, saved.UserID)
	assert.Equal(t, int64(5), *saved.UserID)
	assert.Nil(t, saved.Thumbnail)

	list, err := svc.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Save(ctx, 5, SavedContentInput{ContentType: "video", Title: "missing content id"})
	assert.True(t, IsValidation(err))
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	st := store.NewMemStore()
	svc := NewLibraryService(st)
	ctx := context.Background()

	saved, err := svc.Save(ctx, 5, SavedContentInput{ContentType: "video", ContentID: "video1", Title: "Sunday Service"})
	require.NoError(t, err)

	// Someone else's delete looks like a miss and leaves the record alone.
	err = svc.Delete(ctx, 6, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotNil(t, st.SavedContentByID(saved.ID))

	require.NoError(t, svc.Delete(ctx, 5, saved.ID))

	list, err := svc.List(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.Delete(ctx, 5, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
