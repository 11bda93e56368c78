package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/schema"
)

// The definition file mirrors the store model: a list of spaces, each
// carrying its tags, edge types and indexes.
type definitions struct {
	Spaces []spaceDef `yaml:"spaces"`
}

type spaceDef struct {
	Name       string      `yaml:"name"`
	Partitions int         `yaml:"partitions"`
	Replicas   int         `yaml:"replicas"`
	VidType    string      `yaml:"vid_type"`
	VidLen     int         `yaml:"vid_len"`
	Tags       []schemaDef `yaml:"tags"`
	Edges      []schemaDef `yaml:"edges"`
	Indexes    []indexDef  `yaml:"indexes"`
}

type schemaDef struct {
	Name        string    `yaml:"name"`
	Props       []propDef `yaml:"props"`
	TTLCol      string    `yaml:"ttl_col"`
	TTLDuration int64     `yaml:"ttl_duration"`
}

type propDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Len      int    `yaml:"len"`
	Nullable bool   `yaml:"nullable"`
}

type indexDef struct {
	Name   string   `yaml:"name"`
	Schema string   `yaml:"schema"`
	Edge   bool     `yaml:"edge"`
	Fields []string `yaml:"fields"`
}

func newLoadCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "bulk load schema definitions from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var defs definitions
			if err := yaml.Unmarshal(data, &defs); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			var group errgroup.Group
			group.SetLimit(workers)
			for _, def := range defs.Spaces {
				def := def
				group.Go(func() error {
					return a.loadSpace(def)
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}
			a.logger.Info("load complete", zap.Int("spaces", len(defs.Spaces)))
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "spaces loaded concurrently")
	return cmd
}

func (a *app) loadSpace(def spaceDef) error {
	space, err := def.toSpace()
	if err != nil {
		return err
	}
	if err := a.store.CreateSpace(space); err != nil {
		return fmt.Errorf("space %q: %w", def.Name, err)
	}
	for _, td := range def.Tags {
		props, err := toProps(td.Props)
		if err != nil {
			return fmt.Errorf("tag %q: %w", td.Name, err)
		}
		tag := &schema.Tag{Name: td.Name, Props: props, TTLCol: td.TTLCol, TTLDuration: td.TTLDuration}
		if err := a.store.CreateTag(def.Name, tag); err != nil {
			return fmt.Errorf("tag %q: %w", td.Name, err)
		}
	}
	for _, ed := range def.Edges {
		props, err := toProps(ed.Props)
		if err != nil {
			return fmt.Errorf("edge %q: %w", ed.Name, err)
		}
		edge := &schema.Edge{Name: ed.Name, Props: props, TTLCol: ed.TTLCol, TTLDuration: ed.TTLDuration}
		if err := a.store.CreateEdge(def.Name, edge); err != nil {
			return fmt.Errorf("edge %q: %w", ed.Name, err)
		}
	}
	for _, id := range def.Indexes {
		index := &schema.Index{Name: id.Name, Schema: id.Schema, IsEdge: id.Edge, Fields: id.Fields}
		if err := a.store.CreateIndex(def.Name, index); err != nil {
			return fmt.Errorf("index %q: %w", id.Name, err)
		}
	}
	a.logger.Debug("space loaded",
		zap.String("name", def.Name),
		zap.Int("tags", len(def.Tags)),
		zap.Int("edges", len(def.Edges)),
		zap.Int("indexes", len(def.Indexes)))
	return nil
}

func (d spaceDef) toSpace() (*schema.Space, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("space name must not be empty")
	}
	typ := volta.TypeInt64
	if d.VidType != "" {
		typ = volta.TypeByName(d.VidType)
	}
	switch typ {
	case volta.TypeInt64, volta.TypeFixedString:
	default:
		return nil, fmt.Errorf("space %q: vid type must be int64 or fixed_string, got %q", d.Name, d.VidType)
	}
	partitions := d.Partitions
	if partitions == 0 {
		partitions = 10
	}
	replicas := d.Replicas
	if replicas == 0 {
		replicas = 1
	}
	return &schema.Space{
		ID:         uuid.New(),
		Name:       d.Name,
		Partitions: partitions,
		Replicas:   replicas,
		VidType:    typ,
		VidLen:     d.VidLen,
	}, nil
}

func toProps(defs []propDef) ([]schema.Property, error) {
	props := make([]schema.Property, 0, len(defs))
	for _, pd := range defs {
		typ := volta.TypeByName(pd.Type)
		if typ == volta.TypeUnknown {
			return nil, fmt.Errorf("property %q has unknown type %q", pd.Name, pd.Type)
		}
		props = append(props, schema.Property{
			Name:     pd.Name,
			Type:     typ,
			Len:      pd.Len,
			Nullable: pd.Nullable,
		})
	}
	return props, nil
}
