package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/ubugingoapp/ubugingo-server/internal/config"
	"github.com/ubugingoapp/ubugingo-server/internal/logger"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Store.DataPath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}

// ProvideHistoryStore provides the recently-played store.
func ProvideHistoryStore(i do.Injector) (*store.HistoryStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	handle := do.MustInvoke[*StoreHandle](i)

	return store.NewHistoryStore(handle.Store, cfg.History.Limit, log.Logger), nil
}

// ProvideNoteStore provides the notes store.
func ProvideNoteStore(i do.Injector) (*store.NoteStore, error) {
	log := do.MustInvoke[*logger.Logger](i)
	handle := do.MustInvoke[*StoreHandle](i)

	return store.NewNoteStore(handle.Store, log.Logger), nil
}
