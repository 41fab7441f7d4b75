package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/connectome"
	"github.com/carbocation/connectome/scan"
	"github.com/carbocation/pfx"
)

const (
	DefaultAlpha   = 0.05
	DefaultOrdinal = 1
)

// Group selects the nets of one side of a comparison.
type Group struct {
	Root        string   `json:"root"`
	Subjects    []string `json:"subjects"`
	SubjectFile string   `json:"subject_file"`
	Ordinal     int      `json:"ordinal"`
}

// AllowList returns the subjects of the group, or nil (everyone) when neither
// Subjects nor SubjectFile is set.
func (g Group) AllowList(client *storage.Client) (scan.AllowList, error) {
	switch {
	case len(g.Subjects) > 0 && g.SubjectFile != "":
		return nil, fmt.Errorf("set either subjects or subject_file, not both")
	case g.SubjectFile != "":
		return scan.LoadAllowList(g.SubjectFile, client)
	case len(g.Subjects) > 0:
		return scan.NewAllowList(g.Subjects...), nil
	}

	return nil, nil
}

// JSONConfig describes a two-group comparison run.
type JSONConfig struct {
	ConfigPath  string
	Atlas       string  `json:"atlas"`
	AtlasLabels string  `json:"atlas_labels"`
	Alpha       float64 `json:"alpha"`
	GroupA      Group   `json:"group_a"`
	GroupB      Group   `json:"group_b"`
	Output      string  `json:"output"`
	ByLabel     bool    `json:"by_label"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(connectome.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	out.applyDefaults()

	// Interpret ~ if present
	out.ConfigPath = connectome.ExpandHome(out.ConfigPath)
	out.AtlasLabels = connectome.ExpandHome(out.AtlasLabels)
	out.Output = connectome.ExpandHome(out.Output)
	for _, g := range []*Group{&out.GroupA, &out.GroupB} {
		g.Root = connectome.ExpandHome(g.Root)
		g.SubjectFile = connectome.ExpandHome(g.SubjectFile)
	}

	return out, pfx.Err(out.Validate())
}

func (c *JSONConfig) applyDefaults() {
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	for _, g := range []*Group{&c.GroupA, &c.GroupB} {
		if g.Ordinal == 0 {
			g.Ordinal = DefaultOrdinal
		}
	}
}

// Validate reports the first missing or out of range setting.
func (c JSONConfig) Validate() error {
	if c.Atlas == "" {
		return fmt.Errorf("atlas is required")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %g", c.Alpha)
	}
	if c.ByLabel && c.AtlasLabels == "" {
		return fmt.Errorf("by_label requires atlas_labels")
	}
	for name, g := range map[string]Group{"group_a": c.GroupA, "group_b": c.GroupB} {
		if g.Root == "" {
			return fmt.Errorf("%s.root is required", name)
		}
		if g.Ordinal < 1 {
			return fmt.Errorf("%s.ordinal must be >= 1, got %d", name, g.Ordinal)
		}
	}

	return nil
}
