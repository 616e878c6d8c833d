package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"kasjer/internal/api"
	"kasjer/internal/config"
	"kasjer/internal/database"
	"kasjer/internal/logging"
	"kasjer/internal/queue"
	"kasjer/internal/transport"
	"kasjer/internal/websocket"
)

// App owns the process-scoped resources every host shares: the datastore
// pool, the queue connection and the live inbox hub.
type App struct {
	Config  *config.Config
	Store   *database.Store
	Events  *queue.Publisher
	Hub     *websocket.Hub
	Handler http.Handler

	logCloser io.Closer
}

type Options struct {
	// LiveInbox starts the websocket hub. Function hosts cannot hold sockets.
	LiveInbox bool
}

// New builds the handler chain. A missing datastore endpoint or credential
// leaves the store unavailable instead of failing start-up.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	closer, err := logging.Setup(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, logCloser: closer}

	pool, err := database.Open(ctx, cfg.DB)
	switch {
	case errors.Is(err, database.ErrUnavailable):
		log.Println("WARN: baza danych nie jest skonfigurowana, magazyn rekordów niedostępny")
	case err != nil:
		a.Close()
		return nil, err
	default:
		log.Println("INFO: pula połączeń z bazą danych gotowa")
		if cfg.DB.AutoMigrate {
			if err := database.MigrateUp(cfg.DB); err != nil {
				pool.Close()
				a.Close()
				return nil, err
			}
			log.Println("INFO: migracje zastosowane")
		}
	}
	a.Store = database.NewStore(pool)

	events, err := queue.Connect(cfg.MQ)
	if err != nil {
		log.Printf("WARN: kolejka niedostępna, zdarzenia nie będą publikowane: %v", err)
		events = queue.NewPublisher(queue.Nop{}, cfg.MQ.Queue)
	}
	a.Events = events

	if opts.LiveInbox && cfg.WS.Enabled {
		a.Hub = websocket.NewHub()
		go a.Hub.Run()
	}

	server := api.NewServer(cfg, a.Store, a.Events, a.Hub)
	a.Handler = transport.StripPrefixes(server.Router(), transport.DefaultPrefixes...)

	return a, nil
}

func (a *App) Close() {
	if a.Hub != nil {
		a.Hub.Stop()
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			log.Printf("WARN: closing queue: %v", err)
		}
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
