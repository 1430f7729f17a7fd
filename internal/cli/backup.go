package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/tinyhabits/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := manager.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := manager.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup file name (see 'tinyhabits backup list')."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())

	path := c.Name
	if filepath.Base(path) == path {
		path = filepath.Join(manager.BackupDir(), path)
	}
	if err := manager.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored storage from %s\n", filepath.Base(path))
	return nil
}
