package zhouyi

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
)

func (c *CLI) writeReading(w io.Writer, rd app.Reading) error {
	if c.jsonOutput() {
		return writeJSON(w, rd)
	}
	return c.renderer.Reading(w, rd)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
