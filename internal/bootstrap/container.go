package bootstrap

import (
	"context"

	"simple-note/internal/config"
	"simple-note/internal/controller"
	"simple-note/internal/handler"
	"simple-note/internal/pkg/logger"
	"simple-note/internal/repository/memory"
	"simple-note/internal/repository/unitofwork"
	"simple-note/internal/service"
	"simple-note/internal/websocket"
	pktNats "simple-note/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	// Background services, started by Start
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	NoteEventHandler *handler.NoteEventHandler

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the application. NATS and Redis are optional: an empty
// URL or a failed connection leaves that integration out.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	uowFactory := unitofwork.NewRepositoryFactory(db)

	// Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var rdb *redis.Client
	if cfg.Events.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.Events.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Invalid REDIS_URL, cross-instance fan-out disabled", map[string]interface{}{"error": err})
		} else {
			rdb = redis.NewClient(opt)
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	c.WebSocketHub = websocket.NewHub(rdb, cfg.Events.Topic, sysLogger)
	sinks := []service.EventSink{c.WebSocketHub}

	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS", map[string]interface{}{"error": err})
		} else {
			sinks = append(sinks, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, sysLogger, sinks...)

	noteService := service.NewNoteService(
		uowFactory,
		memory.NewNoteListCache(cfg.Cache.ListTTL),
		publisherService,
		sysLogger,
	)
	healthService := service.NewHealthService(db)

	// Controllers
	c.NoteController = controller.NewNoteController(noteService)
	c.HealthController = controller.NewHealthController(healthService, sysLogger)
	c.NoteEventHandler = handler.NewNoteEventHandler(c.WebSocketHub, sysLogger)

	return c
}

// Start launches the websocket hub and the event consumer. Both stop when
// ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
