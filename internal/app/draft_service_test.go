package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/mocks"
)

func newDraftService(t *testing.T) (*QuoteDraftService, *mocks.MockQuoteRepository, *DraftStore) {
	t.Helper()

	repo := mocks.NewMockQuoteRepository(t)
	catalog := domain.DefaultCatalog()
	quotes := NewQuoteService(QuoteServiceConfig{Quotes: repo, Catalog: catalog, Logger: discardLogger()})
	store := NewDraftStore(time.Hour, 5)

	return NewQuoteDraftService(store, catalog, quotes, discardLogger()), repo, store
}

func TestQuoteDraftService_EditAndPrice(t *testing.T) {
	svc, _, _ := newDraftService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, draft.Lines)
	assert.True(t, draft.Breakdown.Total.IsZero())

	draft, err = svc.SetAgeCategory(ctx, "ana", draft.ID, "1-4a")
	require.NoError(t, err)
	assert.True(t, draft.Breakdown.Total.Equal(dec("200")))

	line, draft, err := svc.AddItem(ctx, "ana", draft.ID, domain.CategoryFabric, "Tule Noiva")
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, draft.Breakdown.Total.Equal(dec("222")))

	draft, err = svc.SetQuantity(ctx, "ana", draft.ID, line.ID, 3)
	require.NoError(t, err)
	assert.True(t, draft.Breakdown.ItemsTotal.Equal(dec("66")))

	draft, err = svc.SetQuantity(ctx, "ana", draft.ID, "missing-line", 9)
	require.NoError(t, err, "unknown lines are ignored")
	assert.True(t, draft.Breakdown.ItemsTotal.Equal(dec("66")))

	draft, err = svc.RemoveItem(ctx, "ana", draft.ID, line.ID)
	require.NoError(t, err)
	assert.Empty(t, draft.Lines)
	assert.True(t, draft.Breakdown.Total.Equal(dec("200")))

	draft, err = svc.SetAgeCategory(ctx, "ana", draft.ID, "")
	require.NoError(t, err)
	assert.True(t, draft.Breakdown.Total.IsZero())
}

func TestQuoteDraftService_Errors(t *testing.T) {
	svc, _, _ := newDraftService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, "ana")
	require.NoError(t, err)

	_, err = svc.SetAgeCategory(ctx, "ana", draft.ID, "adulto")
	assert.True(t, domain.IsValidation(err))

	_, _, err = svc.AddItem(ctx, "ana", draft.ID, domain.CategoryFabric, "Veludo")
	assert.True(t, domain.IsNotFound(err))

	line, _, err := svc.AddItem(ctx, "ana", draft.ID, domain.CategoryFabric, "Linho")
	require.NoError(t, err)

	_, err = svc.SetQuantity(ctx, "ana", draft.ID, line.ID, domain.MaxLineQuantity+1)
	assert.True(t, domain.IsValidation(err))

	view, err := svc.Get(ctx, "ana", draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	view, err = svc.SetQuantity(ctx, "ana", draft.ID, line.ID, domain.MaxLineQuantity)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxLineQuantity, view.Lines[0].Quantity)

	_, err = svc.Get(ctx, "bia", draft.ID)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, svc.Discard(ctx, "ana", draft.ID))
	assert.True(t, domain.IsNotFound(svc.Discard(ctx, "ana", draft.ID)))
}

func TestQuoteDraftService_Submit(t *testing.T) {
	in := DraftSubmission{
		Client:      domain.ClientIdentity{Name: "Maria", Email: "maria@example.com"},
		ServiceType: domain.ServiceTypeRental,
	}

	t.Run("success removes the draft", func(t *testing.T) {
		svc, repo, store := newDraftService(t)
		ctx := context.Background()

		draft, err := svc.Create(ctx, "ana")
		require.NoError(t, err)
		_, err = svc.SetAgeCategory(ctx, "ana", draft.ID, "0-11m")
		require.NoError(t, err)
		_, _, err = svc.AddItem(ctx, "ana", draft.ID, domain.CategoryFinishing, "Crinol")
		require.NoError(t, err)

		repo.On("SubmitQuote", mock.Anything, mock.MatchedBy(func(s domain.QuoteSubmission) bool {
			return s.UserID == "ana" && s.TotalValue.Equal(dec("154")) && s.ServiceType == domain.ServiceTypeRental
		})).Return(&domain.QuoteCreated{QuoteID: "q-1", Total: dec("154")}, nil)

		created, err := svc.Submit(ctx, "ana", draft.ID, in)

		require.NoError(t, err)
		assert.Equal(t, "q-1", created.QuoteID)
		assert.Zero(t, store.Len())
	})

	t.Run("failure keeps the draft editable", func(t *testing.T) {
		svc, _, store := newDraftService(t)
		ctx := context.Background()

		draft, err := svc.Create(ctx, "ana")
		require.NoError(t, err)

		// No age category: rejected before reaching the repository.
		_, err = svc.Submit(ctx, "ana", draft.ID, in)
		require.True(t, domain.IsValidation(err))
		assert.Equal(t, 1, store.Len())

		_, err = svc.SetAgeCategory(ctx, "ana", draft.ID, "0-11m")
		assert.NoError(t, err)
	})
}
