package display

import (
	"context"
	"time"

	"simple-note/internal/pkg/logger"
	"simple-note/pkg/events"

	"github.com/fasthttp/websocket"
)

const reconnectWait = 5 * time.Second

// Listen follows the note event stream at wsURL and calls onEvent for every
// event until ctx is cancelled. Dropped connections are retried.
func Listen(ctx context.Context, wsURL string, log logger.ILogger, onEvent func(events.Event)) {
	for {
		if err := listenOnce(ctx, wsURL, log, onEvent); err != nil && ctx.Err() == nil {
			log.Warn("Display", "Live connection lost", map[string]interface{}{"url": wsURL, "error": err})
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectWait):
		}
	}
}

func listenOnce(ctx context.Context, wsURL string, log logger.ILogger, onEvent func(events.Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	log.Info("Display", "Live connection established", map[string]interface{}{"url": wsURL})
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		evt, err := events.Decode(frame)
		if err != nil {
			log.Warn("Display", "Ignoring undecodable frame", map[string]interface{}{"error": err})
			continue
		}
		onEvent(evt)
	}
}
