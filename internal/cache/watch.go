package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpggio/caredesk/internal/docstore"
)

// Subscriber opens snapshot subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context, collection string) (<-chan docstore.Snapshot, error)
}

// Watch subscribes to every kind and overwrites the cache with each pushed
// snapshot until ctx is done. The returned wait function blocks until all
// subscriptions have drained.
func (m *Manager) Watch(ctx context.Context, sub Subscriber, kinds ...string) (func(), error) {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)

	for _, kind := range kinds {
		ch, err := sub.Subscribe(ctx, kind)
		if err != nil {
			cancel()
			wg.Wait()
			return nil, fmt.Errorf("subscribing to %s: %w", kind, err)
		}
		wg.Add(1)
		go func(kind string) {
			defer wg.Done()
			for snap := range ch {
				m.Set(kind, snap)
				m.logger.Debug("snapshot cached", "kind", kind, "documents", len(snap.Documents))
			}
		}(kind)
	}

	return func() {
		<-ctx.Done()
		wg.Wait()
		cancel()
	}, nil
}
