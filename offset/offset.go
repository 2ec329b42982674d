// Package offset talks to the external geometry service that grows or
// shrinks the contours of a drawing by a kerf distance.
package offset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoCommand is returned when no offset program is configured.
var ErrNoCommand = errors.New("no offset command configured")

// Adjuster offsets every closed contour in a drawing. Positive distances
// grow contours, negative ones shrink them. Input and output are raw bytes
// in the same drawing format.
type Adjuster interface {
	Adjust(ctx context.Context, drawing []byte, distance float64) ([]byte, error)
}

// Command runs an external program as the Adjuster. The program receives
// Args followed by the distance, reads the drawing on stdin and writes the
// adjusted drawing to stdout.
type Command struct {
	Path    string
	Args    []string
	Timeout time.Duration
	Log     *slog.Logger
}

// Adjust implements Adjuster.
func (c *Command) Adjust(ctx context.Context, drawing []byte, distance float64) ([]byte, error) {
	if c.Path == "" {
		return nil, ErrNoCommand
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.Args...), strconv.FormatFloat(distance, 'g', -1, 64))
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdin = bytes.NewReader(drawing)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("offset command %s: %w: %s", c.Path, err, msg)
		}
		return nil, fmt.Errorf("offset command %s: %w", c.Path, err)
	}
	c.logger().Debug("offset command finished",
		"command", c.Path,
		"distance", distance,
		"in_bytes", len(drawing),
		"out_bytes", stdout.Len(),
		"elapsed", time.Since(start),
	)
	return stdout.Bytes(), nil
}

func (c *Command) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// OutputName returns the path the adjusted drawing is saved to:
// "<name>-offset<ext>" next to the source.
func OutputName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-offset" + ext
}
