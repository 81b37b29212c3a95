package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertmeta/recipe-cli/state"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := state.NewBus()

	var got []string
	bus.SubscribeLoggedOut(func() { got = append(got, "first") })
	bus.SubscribeLoggedOut(func() { got = append(got, "second") })
	bus.SubscribeFavoriteToggled(func(ev state.FavoriteToggled) {
		got = append(got, "toggled")
		assert.Equal(t, int64(7), ev.RecipeID)
		assert.True(t, ev.IsFavorite)
	})

	bus.PublishLoggedOut()
	bus.PublishFavoriteToggled(state.FavoriteToggled{RecipeID: 7, IsFavorite: true})

	assert.Equal(t, []string{"first", "second", "toggled"}, got)
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := state.NewBus()
	assert.NotPanics(t, func() {
		bus.PublishLoggedOut()
		bus.PublishFavoriteToggled(state.FavoriteToggled{})
	})
}

func TestBus_SubscribeDuringPublish(t *testing.T) {
	bus := state.NewBus()

	calls := 0
	bus.SubscribeLoggedOut(func() {
		calls++
		bus.SubscribeLoggedOut(func() { calls += 10 })
	})

	bus.PublishLoggedOut()
	assert.Equal(t, 1, calls, "handlers added mid-publish run from the next publish")

	bus.PublishLoggedOut()
	assert.Equal(t, 12, calls)
}
