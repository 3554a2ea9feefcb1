// Package prefs resolves a user's content visibility preferences across
// three layers: an in-memory map for immediate reads, redis for a durable
// cache that survives restarts, and the users table as the authoritative
// store.
package prefs

import (
	"context"
	"log/slog"
	"sync"

	"atelier/internal/cache"
	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/observability"
	"atelier/internal/repository"
)

// Listener receives the new preference value after a successful update or
// rollback for the given user.
type Listener func(userID uint, prefs models.Preferences)

// Resolver coordinates the three preference layers. Safe for concurrent use.
type Resolver struct {
	userRepo repository.UserRepository

	mu        sync.RWMutex
	memory    map[uint]models.Preferences
	listeners []Listener
}

// NewResolver creates a Resolver backed by the given user repository.
func NewResolver(userRepo repository.UserRepository) *Resolver {
	return &Resolver{
		userRepo: userRepo,
		memory:   make(map[uint]models.Preferences),
	}
}

// Subscribe registers a listener notified after every preference change.
func (r *Resolver) Subscribe(fn Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Resolver) notify(userID uint, prefs models.Preferences) {
	r.mu.RLock()
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()
	for _, fn := range listeners {
		fn(userID, prefs)
	}
}

// Read returns the in-memory value without touching redis or the database.
// The second return reports whether a value was resolved for this user yet.
func (r *Resolver) Read(userID uint) (models.Preferences, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.memory[userID]
	return p, ok
}

// Load resolves the user's preferences. A value already cached in memory or
// redis wins over the database row; on a full miss the database value is
// adopted and written back into both cache layers.
func (r *Resolver) Load(ctx context.Context, userID uint) (models.Preferences, error) {
	if p, ok := r.Read(userID); ok {
		return p, nil
	}

	key := cache.PreferencesKey(userID)
	var cached models.Preferences
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		r.store(userID, cached)
		return cached, nil
	}

	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.DefaultPreferences(), err
	}
	prefs := models.Preferences{
		ShowNsfw:        user.ShowNsfw,
		ShowAiGenerated: user.ShowAiGenerated,
	}
	r.store(userID, prefs)
	if err := cache.SetJSON(ctx, key, prefs, cache.PreferencesTTL); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to cache preferences",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
	return prefs, nil
}

// Update applies new preferences optimistically: memory and redis are
// written first so readers see the change immediately, then the database.
// If the database write fails, both cache layers are rolled back to the
// previous value and the error is returned.
func (r *Resolver) Update(ctx context.Context, userID uint, prefs models.Preferences) error {
	previous, hadPrevious := r.Read(userID)

	key := cache.PreferencesKey(userID)
	r.store(userID, prefs)
	if err := cache.SetJSON(ctx, key, prefs, cache.PreferencesTTL); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to cache preferences",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}

	if err := r.userRepo.UpdatePreferences(ctx, userID, prefs); err != nil {
		observability.PreferenceRollbacks.Inc()
		if hadPrevious {
			r.store(userID, previous)
			if cacheErr := cache.SetJSON(ctx, key, previous, cache.PreferencesTTL); cacheErr != nil {
				middleware.Logger.WarnContext(ctx, "failed to roll back cached preferences",
					slog.Uint64("user_id", uint64(userID)),
					slog.String("error", cacheErr.Error()),
				)
			}
			r.notify(userID, previous)
		} else {
			r.Invalidate(ctx, userID)
		}
		return err
	}

	r.notify(userID, prefs)
	return nil
}

// Invalidate drops the user's preferences from both cache layers. The next
// Load re-resolves from the database.
func (r *Resolver) Invalidate(ctx context.Context, userID uint) {
	r.mu.Lock()
	delete(r.memory, userID)
	r.mu.Unlock()
	cache.Invalidate(ctx, cache.PreferencesKey(userID))
}

func (r *Resolver) store(userID uint, prefs models.Preferences) {
	r.mu.Lock()
	r.memory[userID] = prefs
	r.mu.Unlock()
}
