package listingRepo

import (
	"testing"

	"nearbuy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCriteria(priceMin, priceMax *float64) models.FilterCriteria {
	return models.FilterCriteria{
		Kind:     models.KindAll,
		PriceMin: priceMin,
		PriceMax: priceMax,
		Sort:     models.SortRelevance,
	}
}

func TestPageToken_RoundTrip(t *testing.T) {
	for _, offset := range []int{1, 20, 999} {
		token := EncodePageToken(offset)
		require.NotEmpty(t, token)

		got, err := DecodePageToken(token)
		require.NoError(t, err)
		assert.Equal(t, offset, got)
	}
}

func TestPageToken_EmptyMeansStart(t *testing.T) {
	assert.Equal(t, "", EncodePageToken(0))

	offset, err := DecodePageToken("")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestPageToken_Malformed(t *testing.T) {
	for _, token := range []string{"not-base64!!", "b2Zmc2V0", "bzotMTA="} {
		_, err := DecodePageToken(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}

func TestBuildMatchFilter_Unconstrained(t *testing.T) {
	filter := buildMatchFilter(testCriteria(nil, nil), "")
	assert.Empty(t, filter)
}

func TestBuildMatchFilter_PriceRange(t *testing.T) {
	min, max := 10.0, 50.0
	filter := buildMatchFilter(testCriteria(&min, &max), "")

	price, ok := filter["price"]
	require.True(t, ok)
	assert.Contains(t, price, "$gte")
	assert.Contains(t, price, "$lte")
}
