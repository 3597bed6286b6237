package session_fx

import (
	"time"

	"go.uber.org/fx"

	mem "meetspot/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore() mem.SessionStore {
	return mem.NewSessions(2 * time.Hour)
}
