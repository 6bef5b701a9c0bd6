// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// solutionFile is the on-disk shape of a solution list. A bare list is
// accepted as well.
type solutionFile struct {
	Question  string     `json:"question,omitempty" yaml:"question,omitempty"`
	Solutions []Solution `json:"solutions" yaml:"solutions"`
}

// SolutionSet is a validated solution list together with the question it answers.
type SolutionSet struct {
	Question  string
	Solutions []Solution
}

// LoadSolutions reads a solution list from a YAML (.yaml, .yml) or JSON (.json)
// file and validates it. Both formats use the same keys (id, title,
// confidence, source, steps, isBold, procedureLink), so a record moves
// between them unchanged.
func LoadSolutions(path string) (*SolutionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solutions file: %w", err)
	}

	var set *SolutionSet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		set, err = decodeJSON(data)
	case ".yaml", ".yml":
		set, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported solutions file type %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := ValidateSolutions(set.Solutions); err != nil {
		return nil, fmt.Errorf("invalid solutions in %s: %w", path, err)
	}
	return set, nil
}

func decodeJSON(data []byte) (*SolutionSet, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Solution
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return &SolutionSet{Solutions: list}, nil
	}

	var f solutionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &SolutionSet{Question: f.Question, Solutions: f.Solutions}, nil
}

func decodeYAML(data []byte) (*SolutionSet, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return &SolutionSet{}, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var list []Solution
		if err := node.Content[0].Decode(&list); err != nil {
			return nil, err
		}
		return &SolutionSet{Solutions: list}, nil
	}

	var f solutionFile
	if err := node.Content[0].Decode(&f); err != nil {
		return nil, err
	}
	return &SolutionSet{Question: f.Question, Solutions: f.Solutions}, nil
}
