package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/migration"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

type MigrateCmd struct {
	To string `arg:"" help:"Destination storage path (.json for a JSON document, anything else for SQLite)."`
}

func (c *MigrateCmd) Run(ctx *Context) error {
	if strings.HasPrefix(c.To, "postgres://") || strings.HasPrefix(c.To, "postgresql://") {
		return fmt.Errorf("migrating to PostgreSQL is not supported; initialize the server with --config and re-add habits there")
	}
	if c.To == ctx.Store.GetConfigPath() {
		return fmt.Errorf("destination is the current storage")
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var dst storage.Provider
	if strings.HasSuffix(c.To, ".json") {
		dst = storage.NewJSONStore(c.To)
	} else {
		dst = storage.NewSQLiteStore(c.To)
	}
	if err := dst.Init(); err != nil {
		return err
	}
	defer dst.Close()

	moved, err := migration.Migrate(ctx.Store, dst)
	if err != nil {
		return err
	}

	fmt.Printf("Migrated %d habits to %s\n", moved, c.To)
	fmt.Printf("Run future commands with --config %s to use the new storage.\n", c.To)
	return nil
}
