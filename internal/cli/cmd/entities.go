package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/bnema/hoard/internal/domain/entity"
)

var putCmd = &cobra.Command{
	Use:   "put <id> <data>",
	Short: "Add or overwrite an entity in the cache",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a := GetApp()
		err := a.Engine.Add(a.Context(), &entity.Entity{ID: args[0], Data: []byte(args[1])})
		if err != nil {
			return err
		}
		fmt.Printf("stored %s\n", args[0])
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch an entity from the cache, falling back to the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a := GetApp()
		e, err := a.Engine.Get(a.Context(), args[0])
		if errors.Is(err, port.ErrNotFound) {
			return fmt.Errorf("no entity with id %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", e.Data)
		return nil
	},
}

var delCmd = &cobra.Command{
	Use:   "del <id>",
	Short: "Delete an entity from the cache and the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a := GetApp()
		if err := a.Engine.Remove(a.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every cached entity from the cache and the store",
	Long: `Empties the cache and deletes every resident identifier from the
backing store. With cache.purge_store_on_remove_all enabled, the store's
full extent is purged as well.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a := GetApp()
		return a.Engine.RemoveAll(a.Context())
	},
}

func init() {
	rootCmd.AddCommand(putCmd, getCmd, delCmd, purgeCmd)
}
