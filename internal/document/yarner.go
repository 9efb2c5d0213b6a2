// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document reads and writes the documents citations are rendered
// into: the JSON exchanged with a literate-programming host over
// stdin/stdout, and plain Markdown files.
package document

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/bibrender/pkg/types"
)

// HostVersion is the host protocol version this build was written against.
const HostVersion = "0.6.1"

// Context describes the host invocation.
type Context struct {
	// Config is the plugin's section of the host configuration.
	Config map[string]any `json:"config"`

	// Name is the name the host knows the plugin by.
	Name string `json:"name"`

	YarnerVersion string `json:"yarner_version"`
}

// Data is the complete message received from and returned to the host.
type Data struct {
	Context   Context         `json:"context"`
	Documents types.Documents `json:"documents"`
}

// ReadData decodes a host message.
func ReadData(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding host input: %w", err)
	}
	if data.Documents == nil {
		data.Documents = types.Documents{}
	}
	return &data, nil
}

// WriteData encodes data back to the host.
func WriteData(w io.Writer, data *Data) error {
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("encoding host output: %w", err)
	}
	return nil
}

// CheckVersion warns when the host runs a different protocol version. A
// mismatch is not fatal.
func CheckVersion(ctx Context, log *zap.Logger) bool {
	if ctx.YarnerVersion == HostVersion {
		return true
	}
	log.Warn("host version mismatch",
		zap.String("plugin", ctx.Name),
		zap.String("built_against", HostVersion),
		zap.String("host", ctx.YarnerVersion))
	return false
}
