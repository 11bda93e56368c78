package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voltadb/volta/schema"
)

func newTagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "inspect tags",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <space>",
		Short: "list tags of a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.store.ListTags(args[0])
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag.Name)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "describe <space> <name>",
		Short: "describe a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.store.GetTag(args[0], args[1])
			if err != nil {
				return err
			}
			printProps(cmd.OutOrStdout(), tag.Props)
			return nil
		},
	})
	return cmd
}

func newEdgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "inspect edge types",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <space>",
		Short: "list edge types of a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edges, err := a.store.ListEdges(args[0])
			if err != nil {
				return err
			}
			for _, edge := range edges {
				fmt.Fprintln(cmd.OutOrStdout(), edge.Name)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "describe <space> <name>",
		Short: "describe an edge type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			edge, err := a.store.GetEdge(args[0], args[1])
			if err != nil {
				return err
			}
			printProps(cmd.OutOrStdout(), edge.Props)
			return nil
		},
	})
	return cmd
}

func printProps(w io.Writer, props []schema.Property) {
	for _, prop := range props {
		null := "NOT NULL"
		if prop.Nullable {
			null = "NULL"
		}
		def := ""
		if prop.Default != nil {
			def = " DEFAULT " + prop.Default.String()
		}
		if prop.Len > 0 {
			fmt.Fprintf(w, "%s\t%s(%d)\t%s%s\n", prop.Name, prop.Type, prop.Len, null, def)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s%s\n", prop.Name, prop.Type, null, def)
		}
	}
}
