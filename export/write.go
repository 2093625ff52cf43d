// SPDX-License-Identifier: MIT

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

type writeConfig struct {
	indent int
}

// Option configures Encode and WriteFile.
type Option func(c *writeConfig)

// WithIndent sets the indentation width in spaces; n <= 0 writes compact JSON.
func WithIndent(n int) Option {
	return func(c *writeConfig) { c.indent = n }
}

// Marshal encodes doc as JSON followed by a newline.
func Marshal(doc *Document, opts ...Option) ([]byte, error) {
	cfg := writeConfig{indent: DefaultIndent}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		data []byte
		err  error
	)
	if cfg.indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", cfg.indent))
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding graph: %w", err)
	}

	return append(data, '\n'), nil
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document, opts ...Option) error {
	data, err := Marshal(doc, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

// Decode reads a document written by Encode.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding graph: %w", err)
	}

	return &doc, nil
}

// WriteFile writes doc to path atomically: the JSON goes to a temporary file
// in the same directory which is then renamed over path. On error nothing is
// left behind and an existing file at path is unchanged.
func WriteFile(path string, doc *Document, opts ...Option) (err error) {
	data, err := Marshal(doc, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}

	return nil
}

// ReadFile loads a document from path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
