// Package journal persists extension lifecycle events through GORM.
//
// Every load, unload, and reload outcome is appended as a LifecycleEvent,
// giving operators an audit trail of what the host did to which extension
// and why a load failed. The journal is optional: when disabled the host
// runs without it.
//
// # Drivers
//
// The embedded default is SQLite (a single file next to the host). A shared
// MySQL database can be configured instead for multi-host deployments.
//
// # Usage
//
//	db, err := journal.Open(cfg.Journal)
//	if err != nil {
//	    log.Warn("journal unavailable", zap.Error(err))
//	}
//	store := journal.NewStore(db, log)
package journal
