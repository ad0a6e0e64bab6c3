package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2/maybe"
	"gopkg.in/yaml.v3"
)

const defaultExportFileName = ".commitlintrc"

type genCmd struct {
}

func (c genCmd) Run(g globalCmd, args []string) error {
	filename := defaultExportFileName + ".yaml"
	if len(args) > 0 {
		filename = args[0]
	}

	filename, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "output: %v\n", filename)

	st, _ := g.settings()
	res := g.resolve(st, g.logger())

	content, err := encodePolicy(res.Policy, filepath.Ext(filename))
	if err != nil {
		return err
	}

	if err := maybe.WriteFile(filename, content, 0o644); err != nil {
		return fmt.Errorf("write policy %s: %w", filename, err)
	}
	return nil
}

// encodePolicy writes the policy as JSON for a .json extension, YAML otherwise.
func encodePolicy(p Policy, ext string) ([]byte, error) {
	if in(ext, ".json") {
		content, err := json.MarshalIndent(toPlain(p.Value()), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(content, '\n'), nil
	}

	return yaml.Marshal(toNode(p.Value()))
}
