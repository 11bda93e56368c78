package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/schema"
)

func newSpaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "space",
		Short: "manage spaces",
	}
	cmd.AddCommand(newSpaceCreateCmd(a))
	cmd.AddCommand(newSpaceListCmd(a))
	cmd.AddCommand(newSpaceDescribeCmd(a))
	cmd.AddCommand(newSpaceDropCmd(a))
	return cmd
}

func newSpaceCreateCmd(a *app) *cobra.Command {
	var partitions, replicas, vidLen int
	var vidType string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "create a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := volta.TypeByName(vidType)
			switch typ {
			case volta.TypeInt64, volta.TypeFixedString:
			default:
				return fmt.Errorf("vid type must be int64 or fixed_string, got %q", vidType)
			}
			space := &schema.Space{
				ID:         uuid.New(),
				Name:       args[0],
				Partitions: partitions,
				Replicas:   replicas,
				VidType:    typ,
				VidLen:     vidLen,
			}
			if err := a.store.CreateSpace(space); err != nil {
				return err
			}
			a.logger.Info("space created", zap.String("name", space.Name), zap.String("id", space.ID.String()))
			fmt.Fprintln(cmd.OutOrStdout(), space.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&partitions, "partitions", 10, "partition count")
	cmd.Flags().IntVar(&replicas, "replicas", 1, "replica factor")
	cmd.Flags().StringVar(&vidType, "vid-type", "int64", "vertex id type (int64 or fixed_string)")
	cmd.Flags().IntVar(&vidLen, "vid-len", 0, "vertex id length for fixed_string")
	return cmd
}

func newSpaceListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list spaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spaces, err := a.store.ListSpaces()
			if err != nil {
				return err
			}
			for _, space := range spaces {
				fmt.Fprintln(cmd.OutOrStdout(), space.Name)
			}
			return nil
		},
	}
}

func newSpaceDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <name>",
		Short: "describe a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := a.store.GetSpace(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id\t%s\n", space.ID)
			fmt.Fprintf(w, "name\t%s\n", space.Name)
			fmt.Fprintf(w, "partitions\t%d\n", space.Partitions)
			fmt.Fprintf(w, "replicas\t%d\n", space.Replicas)
			if space.VidType == volta.TypeFixedString {
				fmt.Fprintf(w, "vid_type\tfixed_string(%d)\n", space.VidLen)
			} else {
				fmt.Fprintf(w, "vid_type\t%s\n", space.VidType)
			}
			return nil
		},
	}
}

func newSpaceDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "drop a space and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DropSpace(args[0]); err != nil {
				return err
			}
			a.logger.Info("space dropped", zap.String("name", args[0]))
			return nil
		},
	}
}
