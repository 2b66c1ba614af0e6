package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmptyPageRoundTripsAsHit(t *testing.T) {
	data, err := encodePage(nil)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	page, err := decodePage(data)
	assert.NoError(t, err)
	assert.NotNil(t, page, "an empty cached page must read back as a hit")
	assert.Empty(t, page)
}

func TestPageRoundTripKeepsOrder(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	in := []GameSession{
		{ID: "a", Category: "space", Streak: 9, CreatedAt: now},
		{ID: "b", Category: "space", Streak: 4, CreatedAt: now},
	}

	data, err := encodePage(in)
	assert.NoError(t, err)
	out, err := decodePage(data)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodePageNormalizesLegacyNull(t *testing.T) {
	page, err := decodePage([]byte("null"))
	assert.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
