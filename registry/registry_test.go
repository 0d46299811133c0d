package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/types"
)

// TestTriplesCoverEveryVenue: the closed venue set must resolve a
// (ClientType, SocketManagerType, AdapterType) triple with no gaps, since
// callers outside this module look venues up by these tables alone.
func TestTriplesCoverEveryVenue(t *testing.T) {
	for _, venue := range Venues() {
		t.Run(string(venue), func(t *testing.T) {
			client, ok := Clients[venue]
			require.True(t, ok, "missing client constructor")
			assert.NotNil(t, client())

			manager, ok := SocketManagers[venue]
			require.True(t, ok, "missing socket manager constructor")
			assert.Equal(t, venue, manager().Venue)

			_, ok = Adapters[venue]
			require.True(t, ok, "missing adapter set")

			assert.NotPanics(t, func() { Binding(venue) })
		})
	}
}

// TestAdaptersEveryVenueHasAggtrades: aggtrades is the one stream every
// venue in the implemented-socket matrix exposes.
func TestAdaptersEveryVenueHasAggtrades(t *testing.T) {
	for venue, set := range Adapters {
		assert.NotNilf(t, set.AggtradesMessage, "%s: AdapterSet.AggtradesMessage must be populated", venue)
	}
}

func TestBindingUnknownVenuePanics(t *testing.T) {
	assert.Panics(t, func() { Binding(types.Venue("unknown")) })
}
