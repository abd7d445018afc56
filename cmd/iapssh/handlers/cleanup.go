package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/imamik/iapssh/internal/state"
	"github.com/imamik/iapssh/internal/util/fault"
)

// removeAll deletes a directory tree; tests replace it to observe deletions.
var removeAll = os.RemoveAll

// Cleanup handles the cleanup command.
//
// It removes every key directory recorded by previous runs and then the
// record itself. A missing record is a normal no-op. Failures are logged and
// never returned, so cleanup can not fail a job that already finished.
// Directories that could not be removed stay recorded for a later cleanup.
func Cleanup(ctx context.Context, stateFile string) error {
	log := logr.FromContextOrDiscard(ctx)
	store := state.NewStore(resolveStateFile(stateFile))

	rec, ok, err := store.Load()
	if err != nil {
		log.Error(fault.Cleanup(err), "Cleanup skipped", "stateFile", store.Path)
		return nil
	}
	if !ok {
		log.V(1).Info("Nothing to clean up", "stateFile", store.Path)
		return nil
	}

	var remaining []state.Entry
	for _, e := range rec.Entries {
		if err := removeAll(e.KeysDir); err != nil {
			log.Error(fault.Cleanup(fmt.Errorf("failed to remove keys directory %s: %w", e.KeysDir, err)),
				"Cleanup incomplete")
			remaining = append(remaining, e)
			continue
		}
		log.Info("Removed key material", "dir", e.KeysDir)
	}

	if len(remaining) > 0 {
		if err := store.Save(state.Record{Entries: remaining}); err != nil {
			log.Error(fault.Cleanup(err), "Failed to update state file", "stateFile", store.Path)
		}
		return nil
	}

	if err := store.Clear(); err != nil {
		log.Error(fault.Cleanup(err), "Failed to remove state file", "stateFile", store.Path)
	}
	return nil
}
