package drawing

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files the loader cannot decode.
var ErrUnknownFormat = errors.New("unknown drawing format")

// Fingerprint hashes raw drawing bytes so unchanged files can be skipped on
// reload.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Load reads and decodes the drawing at path.
func Load(path string) (*Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// Decode picks a decoder from the file extension of name.
func Decode(name string, data []byte) (*Drawing, error) {
	var (
		d   *Drawing
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		d, err = decodeYAML(data)
	case ".star":
		d, err = Evaluate(filepath.Base(name), string(data), nil)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d.Fingerprint = Fingerprint(data)
	return d, nil
}

func decodeYAML(data []byte) (*Drawing, error) {
	var d Drawing
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save writes d as YAML.
func Save(path string, d *Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
