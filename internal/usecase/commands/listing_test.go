//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"charterdesk/internal/domain/listing"
	"charterdesk/internal/infra"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/commands"
	"charterdesk/internal/usecase/queries"
	"charterdesk/tests/common/builder"
	commandsmock "charterdesk/tests/mock/commands"
	queriesmock "charterdesk/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

type listingCommandsMocks struct {
	repo    *commandsmock.MockListingRepository
	cache   *commandsmock.MockListingCache
	queries *queriesmock.MockListingQueries
}

func newListingCommands(t *testing.T) (commands.ListingCommands, listingCommandsMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := listingCommandsMocks{
		repo:    commandsmock.NewMockListingRepository(ctrl),
		cache:   commandsmock.NewMockListingCache(ctrl),
		queries: queriesmock.NewMockListingQueries(ctrl),
	}
	return commands.NewListingCommands(m.repo, m.cache, m.queries), m
}

func validSaveParams() commands.SaveListingParams {
	return commands.SaveListingParams{
		Name:           "Blue Voyage Gulet",
		Currency:       "TRY",
		OwnerName:      "Captain Kemal",
		OwnerPhone:     "+90 555 000 0000",
		CommissionRate: 15,
		Rates: map[string]commands.RateParams{
			"hourly": {Active: true, UnitPrice: 1000, MinDuration: 2},
			"daily":  {Active: true, UnitPrice: 8000},
			"stay":   {Active: true, UnitPrice: 5000, MinDuration: 3},
		},
	}
}

func TestListingCommands_CreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("success: persists, invalidates the cache and re-reads the view", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		var createdID uuid.UUID
		m.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *listing.Listing) error {
				createdID = l.ID()
				assert.Equal(t, "Blue Voyage Gulet", l.Name())
				assert.Equal(t, 15, l.CommissionRate())
				return nil
			})
		m.cache.EXPECT().Invalidate(ctx, gomock.Any()).Return(nil)
		m.queries.EXPECT().GetByID(ctx, gomock.Any(), "").
			DoAndReturn(func(_ context.Context, id uuid.UUID, _ string) (*queries.ListingView, error) {
				assert.Equal(t, createdID, id)
				return &queries.ListingView{ID: id, Name: "Blue Voyage Gulet"}, nil
			})

		view, err := cmd.CreateListing(ctx, validSaveParams())
		require.NoError(t, err)
		assert.Equal(t, createdID, view.ID)
	})

	t.Run("success: a cache invalidation failure does not fail the write", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		m.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		m.cache.EXPECT().Invalidate(ctx, gomock.Any()).Return(errDBConnectionLost)
		m.queries.EXPECT().GetByID(ctx, gomock.Any(), "").
			Return(&queries.ListingView{}, nil)

		_, err := cmd.CreateListing(ctx, validSaveParams())
		assert.NoError(t, err)
	})

	t.Run("error: unknown rate mode maps to ErrDomainValidation", func(t *testing.T) {
		cmd, _ := newListingCommands(t)

		params := validSaveParams()
		params.Rates["weekend"] = commands.RateParams{Active: true, UnitPrice: 100}

		_, err := cmd.CreateListing(ctx, params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("error: invalid entity maps to ErrDomainValidation", func(t *testing.T) {
		cmd, _ := newListingCommands(t)

		params := validSaveParams()
		params.CommissionRate = 120

		_, err := cmd.CreateListing(ctx, params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("error: duplicate key maps to ErrDomainValidation", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		m.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey))

		_, err := cmd.CreateListing(ctx, validSaveParams())
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("error: store failure maps to ErrDatabaseOperationFailed", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		m.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(infra.WrapRepoErr("insert failed", errDBConnectionLost))

		_, err := cmd.CreateListing(ctx, validSaveParams())
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}

func TestListingCommands_UpdateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("success: replaces the catalog and keeps the id", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		current := builder.NewListingBuilder().BuildReconstructed()
		m.repo.EXPECT().FindByID(ctx, current.ID()).Return(current, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *listing.Listing) error {
				assert.Equal(t, current.ID(), l.ID())
				assert.Equal(t, "Renamed Gulet", l.Name())
				return nil
			})
		m.cache.EXPECT().Invalidate(ctx, current.ID()).Return(nil)
		m.queries.EXPECT().GetByID(ctx, current.ID(), "").
			Return(&queries.ListingView{ID: current.ID(), Name: "Renamed Gulet"}, nil)

		params := validSaveParams()
		params.Name = "Renamed Gulet"

		view, err := cmd.UpdateListing(ctx, current.ID(), params)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Gulet", view.Name)
	})

	t.Run("error: unknown listing maps to ErrListingNotFound", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		id := uuid.New()
		m.repo.EXPECT().FindByID(ctx, id).
			Return(nil, infra.WrapRepoErr("listing not found", nil, infra.KindNotFound))

		_, err := cmd.UpdateListing(ctx, id, validSaveParams())
		assert.ErrorIs(t, err, errs.ErrListingNotFound)
	})

	t.Run("error: invalid replacement catalog maps to ErrDomainValidation", func(t *testing.T) {
		cmd, m := newListingCommands(t)

		current := builder.NewListingBuilder().BuildReconstructed()
		m.repo.EXPECT().FindByID(ctx, current.ID()).Return(current, nil)

		params := validSaveParams()
		params.Rates["hourly"] = commands.RateParams{Active: true, UnitPrice: -5}

		_, err := cmd.UpdateListing(ctx, current.ID(), params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
