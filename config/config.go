// Package config reads the optional YAML configuration of pairfeat.
//
//	coref: [exact_match, head_match]
//	relation: [entity_type_pair, tree_distance]
//	head:
//	  rule4: ["$", ADJP, PRN]
package config

import (
	"fmt"
	"os"

	"github.com/revelaction/pairfeat/feature"
	"github.com/revelaction/pairfeat/tree"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Feature selection per task. Empty means the defaults.
	Coref    []string `yaml:"coref"`
	Relation []string `yaml:"relation"`

	Head Head `yaml:"head"`
}

type Head struct {
	Rule4 []string `yaml:"rule4"`
}

// Load reads the configuration file at path. An empty path returns the
// zero Config.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, fmt.Errorf("YAML decoding error: %w", err)
	}
	return c, nil
}

// CorefSet resolves the coreference feature selection.
func (c *Config) CorefSet() (feature.Set, error) {
	return selection(feature.Coref, c.Coref, feature.CorefDefaults)
}

// RelationSet resolves the relation feature selection.
func (c *Config) RelationSet() (feature.Set, error) {
	return selection(feature.Relation, c.Relation, feature.RelationDefaults)
}

func selection(r *feature.Registry, names, defaults []string) (feature.Set, error) {
	if len(names) == 0 {
		names = defaults
	}
	return r.Set(names...)
}

// HeadFinder returns the head finder with the configured rule 4 labels.
func (c *Config) HeadFinder() tree.HeadFinder {
	if len(c.Head.Rule4) == 0 {
		return tree.DefaultHeadFinder
	}
	return tree.HeadFinder{Rule4: c.Head.Rule4}
}
