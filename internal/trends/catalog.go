package trends

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// CatalogError is fatal: the process must not start without trend data.
type CatalogError struct {
	Path string
	Err  error
}

func (e *CatalogError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("trend catalog: %v", e.Err)
	}
	return fmt.Sprintf("trend catalog %s: %v", e.Path, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

type Format struct {
	Name      string   `json:"name"`
	Platforms []string `json:"platforms"`
	Keywords  []string `json:"keywords"`
}

type VisualStyle struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Style    string   `json:"style"`
	Camera   string   `json:"camera"`
}

type Sound struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	Vibe     string `json:"vibe"`
}

// Catalog is loaded once at startup and read-only afterwards. A reload,
// if ever needed, must swap a whole new Catalog value.
type Catalog struct {
	Formats      []Format            `json:"formats"`
	VisualStyles []VisualStyle       `json:"visual_styles"`
	Hooks        []string            `json:"hooks"`
	CTAs         []string            `json:"cta"`
	Hashtags     map[string][]string `json:"hashtags"`
	Sounds       []Sound             `json:"sounds"`
}

//go:embed catalog_default.json
var defaultCatalogJSON []byte

// Load reads the trend catalog from path. An empty path loads the
// embedded default catalog.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalogJSON
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, &CatalogError{Path: path, Err: err}
			}
			// Missing file falls back to the packaged catalog.
		} else {
			raw = data
		}
	}
	return Parse(raw, path)
}

// Parse decodes and validates catalog JSON.
func Parse(raw []byte, path string) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, &CatalogError{Path: path, Err: err}
	}
	if err := cat.validate(); err != nil {
		return nil, &CatalogError{Path: path, Err: err}
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	if len(c.Formats) == 0 {
		return fmt.Errorf("no formats defined")
	}
	for i, f := range c.Formats {
		if f.Name == "" {
			return fmt.Errorf("format %d has no name", i)
		}
	}
	if len(c.VisualStyles) == 0 {
		return fmt.Errorf("no visual styles defined")
	}
	for i, v := range c.VisualStyles {
		if v.Name == "" {
			return fmt.Errorf("visual style %d has no name", i)
		}
	}
	if len(c.Hooks) == 0 {
		return fmt.Errorf("no hooks defined")
	}
	if len(c.CTAs) == 0 {
		return fmt.Errorf("no CTAs defined")
	}
	if len(c.Hashtags["general"]) == 0 {
		return fmt.Errorf("no general hashtags defined")
	}
	return nil
}
