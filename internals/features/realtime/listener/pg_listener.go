// internals/features/realtime/listener/pg_listener.go
package listener

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"cra_backend/internals/features/realtime/hub"
	"cra_backend/internals/helpers/zlog"
)

const (
	ChannelAppointments = "appointments_changed"
	TableAppointments   = "appointments"
)

type Broadcaster interface {
	Broadcast(e hub.Event) int
}

// changePayload is what the appointments trigger sends through pg_notify.
type changePayload struct {
	Op     string     `json:"op"`
	ID     uuid.UUID  `json:"id"`
	UnitID *uuid.UUID `json:"unit_id"`
}

// ToEvent turns a notification payload into a client event. The row id is
// read but never forwarded.
func ToEvent(table, raw string) (hub.Event, error) {
	var p changePayload
	if err := sonic.UnmarshalString(raw, &p); err != nil {
		return hub.Event{}, fmt.Errorf("decode payload: %w", err)
	}
	op := strings.ToUpper(strings.TrimSpace(p.Op))
	switch op {
	case "INSERT", "UPDATE", "DELETE":
	default:
		return hub.Event{}, fmt.Errorf("unknown op %q", p.Op)
	}
	return hub.Event{
		Type:   hub.EventRefreshAvailable,
		Table:  table,
		Op:     op,
		UnitID: p.UnitID,
	}, nil
}

// Listener forwards LISTEN/NOTIFY messages to a Broadcaster. It needs a
// session-level connection, not a transaction pooler.
type Listener struct {
	DSN     string
	Channel string
	Table   string
	Out     Broadcaster
}

func New(dsn string, out Broadcaster) *Listener {
	return &Listener{
		DSN:     dsn,
		Channel: ChannelAppointments,
		Table:   TableAppointments,
		Out:     out,
	}
}

// Run blocks until ctx is done. pq reconnects on its own; after a reconnect
// every client is told to refresh since events may have been lost.
func (l *Listener) Run(ctx context.Context) error {
	pl := pq.NewListener(l.DSN, 5*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			zlog.Warn("realtime: listener connection problem", zap.Error(err))
		case pq.ListenerEventReconnected:
			zlog.Info("realtime: listener reconnected")
		}
	})
	defer pl.Close()

	if err := pl.Listen(l.Channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.Channel, err)
	}
	zlog.Info("📡 realtime listener started", zap.String("channel", l.Channel))

	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			zlog.Info("realtime listener stopped")
			return nil

		case n := <-pl.Notify:
			if n == nil {
				l.Out.Broadcast(hub.Event{Type: hub.EventRefreshAvailable, Table: l.Table})
				continue
			}
			e, err := ToEvent(l.Table, n.Extra)
			if err != nil {
				zlog.Warn("realtime: bad notification", zap.String("payload", n.Extra), zap.Error(err))
				continue
			}
			l.Out.Broadcast(e)

		case <-ping.C:
			go func() {
				if err := pl.Ping(); err != nil {
					zlog.Warn("realtime: listener ping failed", zap.Error(err))
				}
			}()
		}
	}
}
