package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwrlabs/dbm/store"
)

// openTarget resolves the leading arguments to a store: <type> <id>, or
// nothing when static is set.
func (o *rootOptions) openTarget(static bool, args []string) (store.Store, []string, error) {
	if static {
		return o.db.Static(), args, nil
	}
	if len(args) < 2 {
		return nil, nil, fmt.Errorf("expected <type> <id>")
	}
	s, err := o.db.Open(args[0], args[1])
	if err != nil {
		return nil, nil, err
	}
	return s, args[2:], nil
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var (
		as     string
		static bool
	)
	cmd := &cobra.Command{
		Use:   "get <type> <id> <field>",
		Short: "Print a stored field",
		Long: `Prints one field decoded as the --as type. Missing fields print the type's
zero value. With --static the field is read from the static store and
<type> <id> are omitted.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, rest, err := opts.openTarget(static, args)
			if err != nil {
				return err
			}
			if len(rest) != 1 {
				return fmt.Errorf("expected exactly one field name")
			}
			text, err := loadText(cmd.Context(), s, as, rest[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "string", fmt.Sprintf("Value type, one of %v", valueTypes))
	cmd.Flags().BoolVar(&static, "static", false, "Use the static store")
	return cmd
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	var (
		as     string
		static bool
	)
	cmd := &cobra.Command{
		Use:   "set <type> <id> <field> <value>",
		Short: "Store a field",
		Long: `Parses <value> as the --as type and stores it. With --static the field is
written to the static store and <type> <id> are omitted.`,
		Args: cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, rest, err := opts.openTarget(static, args)
			if err != nil {
				return err
			}
			if len(rest) != 2 {
				return fmt.Errorf("expected <field> <value>")
			}
			v, err := parseValue(as, rest[1])
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", as, err)
			}
			return s.Store(cmd.Context(), rest[0], v)
		},
	}
	cmd.Flags().StringVar(&as, "as", "string", fmt.Sprintf("Value type, one of %v", valueTypes))
	cmd.Flags().BoolVar(&static, "static", false, "Use the static store")
	return cmd
}

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <type> <id> [field]",
		Short: "Delete a field, or the whole instance",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, rest, err := opts.openTarget(false, args)
			if err != nil {
				return err
			}
			if len(rest) == 0 {
				return s.DeleteAll(cmd.Context())
			}
			return s.Delete(cmd.Context(), rest[0])
		},
	}
}

func newLsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls <type>",
		Aliases: []string{"ids"},
		Short:   "List persisted instance ids of a type",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := opts.db.Instances(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Print a fresh instance id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), store.NewInstanceID())
			return nil
		},
	}
}
