package state

import "sync"

// Event names, used in logs.
const (
	EventLoggedOut       = "auth.logged_out"
	EventFavoriteToggled = "favorites.toggled"
)

// FavoriteToggled is published after the server confirms a favorite toggle.
type FavoriteToggled struct {
	RecipeID   int64
	IsFavorite bool
}

// Bus is an in-process, synchronous event bus. Publish calls every
// subscriber in registration order and returns once all have run.
type Bus struct {
	mu              sync.RWMutex
	loggedOut       []func()
	favoriteToggled []func(FavoriteToggled)
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeLoggedOut registers fn for the auth.logged_out event.
func (b *Bus) SubscribeLoggedOut(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loggedOut = append(b.loggedOut, fn)
}

// SubscribeFavoriteToggled registers fn for the favorites.toggled event.
func (b *Bus) SubscribeFavoriteToggled(fn func(FavoriteToggled)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.favoriteToggled = append(b.favoriteToggled, fn)
}

// PublishLoggedOut delivers auth.logged_out.
func (b *Bus) PublishLoggedOut() {
	b.mu.RLock()
	handlers := append([]func(){}, b.loggedOut...)
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

// PublishFavoriteToggled delivers favorites.toggled.
func (b *Bus) PublishFavoriteToggled(ev FavoriteToggled) {
	b.mu.RLock()
	handlers := append([]func(FavoriteToggled){}, b.favoriteToggled...)
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}
