package testutil

import (
	"context"
	"fmt"
	"playerbase/lib/sqliteutil"
	"playerbase/lib/telemetry"
	"playerbase/services/playerstore"
	"testing"
)

type StoreParams struct {
	Name string
	// if unspecified, it will use `:memory:`
	DbPath string
}

// SetupStore installs test telemetry and opens a player store that is
// closed when the test ends.
func SetupStore(t testing.TB, params StoreParams) *playerstore.Store {
	telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	dbpath := ":memory:"
	if params.DbPath != "" {
		dbpath = params.DbPath
	}
	store, err := playerstore.Open(context.Background(), sqliteutil.Config{File: dbpath})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
