package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/gridflow-dev/gridflow/pkg/errors"
	"github.com/gridflow-dev/gridflow/pkg/session"
)

// snapshotCommand creates the snapshot command group.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage named diagram snapshots",
		Long: `Manage named diagram snapshots.

Snapshots store diagram documents on disk with a revision token that
changes on every save. Updating an existing snapshot requires presenting
its current revision; a stale revision fails instead of overwriting
concurrent changes.`,
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotRemoveCommand())
	return cmd
}

// newStore opens the snapshot store configured for this CLI.
func (c *CLI) newStore() (session.Store, error) {
	store, err := session.NewFileStore(c.Config.SnapshotDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "open snapshot store")
	}
	return store, nil
}

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var revision string

	cmd := &cobra.Command{
		Use:   "save [name] [diagram.json]",
		Short: "Save a diagram as a named snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshotSave(cmd, args[0], args[1], revision)
		},
	}

	cmd.Flags().StringVarP(&revision, "revision", "r", "", "revision the save is based on (empty to create)")
	return cmd
}

func (c *CLI) runSnapshotSave(cmd *cobra.Command, name, input, revision string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "diagram %s", input)
	}
	if !json.Valid(data) {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "diagram %s is not valid JSON", input)
	}

	store, err := c.newStore()
	if err != nil {
		return err
	}
	snap, err := store.Save(cmd.Context(), name, data, revision)
	if err != nil {
		if errors.Is(err, session.ErrRevisionConflict) {
			return apperrors.Wrap(apperrors.ErrCodeRevisionConflict, err, "save snapshot %s", name)
		}
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "save snapshot %s", name)
	}

	c.printSuccess("Saved snapshot %s", name)
	c.printInfo("revision %s", snap.Revision)
	return nil
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a snapshot's diagram document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore()
			if err != nil {
				return err
			}
			snap, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return apperrors.Wrap(apperrors.ErrCodeSnapshotNotFound, err, "snapshot %s", args[0])
				}
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "load snapshot %s", args[0])
			}
			c.printMeta("revision %s, updated %s", snap.Revision, snap.UpdatedAt.Format("2006-01-02 15:04:05"))
			fmt.Println(string(snap.Diagram))
			return nil
		},
	}
	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore()
			if err != nil {
				return err
			}
			names, err := store.List(cmd.Context())
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "list snapshots")
			}
			if len(names) == 0 {
				c.printInfo("no snapshots stored")
				return nil
			}
			for _, n := range names {
				fmt.Println(c.highlight(n))
			}
			return nil
		},
	}
	return cmd
}

func (c *CLI) snapshotRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Remove a snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "remove snapshot %s", args[0])
			}
			c.printSuccess("Removed snapshot %s", args[0])
			return nil
		},
	}
	return cmd
}
