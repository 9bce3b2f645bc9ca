package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabadul/exchange-engine/internal/store"
	"github.com/tabadul/exchange-engine/internal/store/mocks"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

func queryForCategory(categoryID string) any {
	return mock.MatchedBy(func(q store.CategoryQuery) bool {
		return q.CategoryID == categoryID
	})
}

func TestFindChains_NoWantedItem(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)
	eng := NewEngine(st, testProvider())

	origin := cashListing("a1", "phones", nil)
	assert.Nil(t, eng.FindChains(context.Background(), &origin))
}

func TestFindChains_FindsThreePartyLoop(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)

	// A has a car and wants a phone. B has a phone and wants jewelry.
	// C has jewelry and wants a car, closing the loop.
	b := exchangeListing("b1", "phones", "jewelry", nil)
	c := exchangeListing("c1", "jewelry", "cars", nil)

	st.On("QueryByCategory", mock.Anything, queryForCategory("phones")).
		Return([]domain.Listing{b}, nil)
	st.On("QueryByCategory", mock.Anything, queryForCategory("jewelry")).
		Return([]domain.Listing{c}, nil)

	eng := NewEngine(st, testProvider())
	origin := exchangeListing("a1", "cars", "phones", nil)

	chains := eng.FindChains(context.Background(), &origin)
	require.Len(t, chains, 1)

	chain := chains[0]
	assert.Equal(t, 70, chain.TotalScore)
	require.Len(t, chain.Links, 2)
	assert.Equal(t, "b1", chain.Links[0].Listing.ID)
	assert.Equal(t, "c1", chain.Links[1].Listing.ID)
	assert.Equal(t, "b1", chain.Links[0].DisplayHas)
	assert.Equal(t, "Jewelry", chain.Links[0].DisplayWants)
	assert.Equal(t, "Cars", chain.Links[1].DisplayWants)
	assert.Equal(t, "phone", chain.Links[0].CategoryIcon)
	assert.Equal(t, "gem", chain.Links[1].CategoryIcon)
}

func TestFindChains_SkipsDirectMatches(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)

	// B wants the origin's own category, so A↔B is a pairwise trade and
	// must not spawn a chain. No second-hop query may run.
	b := exchangeListing("b1", "phones", "cars", nil)
	st.On("QueryByCategory", mock.Anything, queryForCategory("phones")).
		Return([]domain.Listing{b}, nil)

	eng := NewEngine(st, testProvider())
	origin := exchangeListing("a1", "cars", "phones", nil)

	assert.Empty(t, eng.FindChains(context.Background(), &origin))
}

func TestFindChains_SkipsCandidatesWithoutWants(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)

	b := domain.Listing{
		ID:         "b1",
		Title:      "b1",
		CategoryID: "phones",
		TradeMode:  domain.TradeExchange,
		Status:     domain.StatusActive,
	}
	st.On("QueryByCategory", mock.Anything, queryForCategory("phones")).
		Return([]domain.Listing{b}, nil)

	eng := NewEngine(st, testProvider())
	origin := exchangeListing("a1", "cars", "phones", nil)

	assert.Empty(t, eng.FindChains(context.Background(), &origin))
}

func TestFindChains_ClosesOnlyMatchingLoops(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)

	b := exchangeListing("b1", "phones", "jewelry", nil)
	// C wants phones, not cars: the loop does not close.
	c := exchangeListing("c1", "jewelry", "phones", nil)

	st.On("QueryByCategory", mock.Anything, queryForCategory("phones")).
		Return([]domain.Listing{b}, nil)
	st.On("QueryByCategory", mock.Anything, queryForCategory("jewelry")).
		Return([]domain.Listing{c}, nil)

	eng := NewEngine(st, testProvider())
	origin := exchangeListing("a1", "cars", "phones", nil)

	assert.Empty(t, eng.FindChains(context.Background(), &origin))
}

func TestFindChains_GlobalCap(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)

	b := exchangeListing("b1", "phones", "jewelry", nil)
	cs := []domain.Listing{
		exchangeListing("c1", "jewelry", "cars", nil),
		exchangeListing("c2", "jewelry", "cars", nil),
	}

	st.On("QueryByCategory", mock.Anything, queryForCategory("phones")).
		Return([]domain.Listing{b}, nil)
	st.On("QueryByCategory", mock.Anything, queryForCategory("jewelry")).
		Return(cs, nil)

	limits := DefaultLimits()
	limits.MaxChains = 1
	eng := NewEngine(st, testProvider(), WithLimits(limits))

	origin := exchangeListing("a1", "cars", "phones", nil)

	chains := eng.FindChains(context.Background(), &origin)
	require.Len(t, chains, 1)
	assert.Equal(t, "c1", chains[0].Links[1].Listing.ID)
}

func TestFindChains_QueryShape(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockListingStore(t)
	exchange := domain.TradeExchange

	b := exchangeListing("b1", "phones", "jewelry", nil)
	st.On("QueryByCategory", mock.Anything, store.CategoryQuery{
		CategoryID: "phones",
		TradeMode:  &exchange,
		ExcludeIDs: []string{"a1"},
		Limit:      10,
	}).Return([]domain.Listing{b}, nil)
	st.On("QueryByCategory", mock.Anything, store.CategoryQuery{
		CategoryID: "jewelry",
		TradeMode:  &exchange,
		ExcludeIDs: []string{"a1", "b1"},
		Limit:      5,
	}).Return(nil, nil)

	eng := NewEngine(st, testProvider())
	origin := exchangeListing("a1", "cars", "phones", nil)

	assert.Empty(t, eng.FindChains(context.Background(), &origin))
}
