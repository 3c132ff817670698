package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagewatch"
	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// Config is the contents of a watch definition file.
type Config struct {
	Settings pagewatch.Settings `yaml:"settings"`
	Watches  []WatchConfig      `yaml:"watches"`
}

// WatchConfig defines one watch and the already-fetched response to check.
type WatchConfig struct {
	Name string `yaml:"name"`

	pagewatch.Watch `yaml:",inline"`

	// Content is the path of the fetched body, relative to the config file.
	Content     string            `yaml:"content"`
	ContentType string            `yaml:"content_type"`
	StatusCode  int               `yaml:"status_code"`
	Headers     map[string]string `yaml:"headers"`
}

// UnmarshalYAML keeps every kind of change unless the file narrows it.
// Unknown keys are rejected.
func (w *WatchConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain WatchConfig
	p := plain{StatusCode: http.StatusOK}
	p.DiffFilter = pagewatch.DefaultDiffFilter()

	// Node.Decode does not inherit the outer decoder's KnownFields.
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*w = WatchConfig(p)
	return nil
}

// LoadConfig reads and validates a watch definition file. Content paths are
// resolved against the directory of the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid config %q: %v", path, err)
	}

	seen := make(map[string]bool, len(cfg.Watches))
	dir := filepath.Dir(path)
	for i := range cfg.Watches {
		w := &cfg.Watches[i]
		switch {
		case w.Name == "":
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "watch %d: name required", i+1)
		case w.URL == "":
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "watch %q: url required", w.Name)
		case w.Content == "":
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "watch %q: content required", w.Name)
		case seen[w.Name]:
			return nil, pagewatch.Errorf(pagewatch.EINVALID, "watch %q defined twice", w.Name)
		}
		seen[w.Name] = true

		if !filepath.IsAbs(w.Content) {
			w.Content = filepath.Join(dir, w.Content)
		}
	}
	return &cfg, nil
}

// FetchResult reads the response body and decodes it to UTF-8 using the
// declared or sniffed character set.
func (w *WatchConfig) FetchResult() (pagewatch.FetchResult, error) {
	raw, err := os.ReadFile(w.Content)
	if err != nil {
		return pagewatch.FetchResult{}, fmt.Errorf("failed to read content of %q: %w", w.Name, err)
	}

	headers := make(http.Header, len(w.Headers)+1)
	for k, v := range w.Headers {
		headers.Set(k, v)
	}
	if w.ContentType != "" {
		headers.Set("Content-Type", w.ContentType)
	}

	r, err := charset.NewReader(bytes.NewReader(raw), headers.Get("Content-Type"))
	if err != nil {
		return pagewatch.FetchResult{}, pagewatch.Errorf(pagewatch.EINVALID, "unsupported encoding for %q: %v", w.Name, err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return pagewatch.FetchResult{}, fmt.Errorf("failed to decode content of %q: %w", w.Name, err)
	}

	return pagewatch.FetchResult{
		Content:    string(content),
		RawContent: raw,
		Headers:    headers,
		StatusCode: w.StatusCode,
	}, nil
}
