// Package config loads YAML signature queries, mirroring
// kai-core/modulematch.LoadRules's read-file-then-unmarshal shape for
// discovery.Signature instead of module rules.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kailayerhq/sigfind/discovery"
)

// SignatureSet is the top-level shape of a sigfind.query.yaml file: one or
// more named signatures a caller can select by name from the CLI.
type SignatureSet struct {
	Signatures map[string]discovery.Signature `yaml:"signatures"`
}

// LoadSignatureSet reads and parses path into a SignatureSet. Every
// signature is Compile()d before being returned, so a bad regex in the
// file surfaces immediately rather than at first Discover call.
func LoadSignatureSet(path string) (*SignatureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature file: %w", err)
	}

	var set SignatureSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing signature file: %w", err)
	}

	for name, sig := range set.Signatures {
		if err := sig.Compile(); err != nil {
			return nil, fmt.Errorf("signature %q: %w", name, err)
		}
		set.Signatures[name] = sig
	}

	return &set, nil
}

// LoadSignature reads a single named signature out of path.
func LoadSignature(path, name string) (discovery.Signature, error) {
	set, err := LoadSignatureSet(path)
	if err != nil {
		return discovery.Signature{}, err
	}
	sig, ok := set.Signatures[name]
	if !ok {
		return discovery.Signature{}, fmt.Errorf("signature %q not found in %s", name, path)
	}
	return sig, nil
}
