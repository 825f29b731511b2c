// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"sync"

	"github.com/dalemusser/auxilium/internal/app/store/sessions"
	"github.com/dalemusser/auxilium/internal/app/system/mailer"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Sessions persists admin sessions in MongoDB.
	Sessions *sessions.Store
	// Media is Cloudinary when configured, media.Disabled otherwise.
	Media media.Uploader
	// Mailer delivers contact notifications over the configured transport.
	Mailer  *mailer.Mailer
	Metrics *metrics.Metrics

	bg *background
}

// background collects things started by Startup and BuildHandler that
// Shutdown must stop. DBDeps is passed by value, so it is shared by pointer.
type background struct {
	mu    sync.Mutex
	stops []func()
}

func (b *background) add(stop func()) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.stops = append(b.stops, stop)
	b.mu.Unlock()
}

// stopAll runs the stop functions newest first.
func (b *background) stopAll() {
	if b == nil {
		return
	}
	b.mu.Lock()
	stops := b.stops
	b.stops = nil
	b.mu.Unlock()
	for i := len(stops) - 1; i >= 0; i-- {
		stops[i]()
	}
}
