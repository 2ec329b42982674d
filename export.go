package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"kerf-view/config"
	"kerf-view/drawing"
	"kerf-view/offset"
)

func newAdjuster(cfg *config.Config, log *slog.Logger) *offset.Command {
	return &offset.Command{
		Path:    cfg.Offset.Command,
		Args:    cfg.Offset.Args,
		Timeout: cfg.Offset.Timeout(),
		Log:     log,
	}
}

// exportOffset runs adj on the drawing at path and writes the result next to
// it. The result must decode as a drawing of the same format.
func exportOffset(ctx context.Context, adj offset.Adjuster, path string, distance float64) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	adjusted, err := adj.Adjust(ctx, data, distance)
	if err != nil {
		return "", err
	}

	out := offset.OutputName(path)
	if _, err := drawing.Decode(out, adjusted); err != nil {
		return "", fmt.Errorf("offset program returned an unreadable drawing: %w", err)
	}
	if err := os.WriteFile(out, adjusted, 0o644); err != nil {
		return "", err
	}
	return out, nil
}
