// Package fixtures holds the demo data sets the seeders write. The data lives
// in embedded YAML so it can be read, diffed and tested apart from the code
// that writes it.
package fixtures

import (
	"embed"
	"fmt"

	"github.com/benvon/taskplanet-seed/internal/models"
	"github.com/benvon/taskplanet-seed/internal/validation"
	"gopkg.in/yaml.v3"
)

// Names of the embedded fixtures.
const (
	Flat        = "flat"
	Dimensional = "dimensional"
)

//go:embed *.yaml
var files embed.FS

// Fixture is one seed data set: a tag set and a task set. An empty tag set
// with weightless tasks is a plain bulk task load.
type Fixture struct {
	Name  string `yaml:"name" validate:"required"`
	Tags  []Tag  `yaml:"tags" validate:"unique=Code,dive"`
	Tasks []Task `yaml:"tasks" validate:"required,min=1,dive"`
}

// Tag describes one tag_dim row, keyed by Code.
type Tag struct {
	Code  string `yaml:"code" validate:"required,tag_code"`
	Label string `yaml:"label" validate:"required"`
	Group string `yaml:"group" validate:"required"`
}

// Task describes one task and, optionally, its tag weights in lookup order.
type Task struct {
	Description   string   `yaml:"description" validate:"required"`
	Mood          []string `yaml:"mood" validate:"dive,required"`
	SuggestedTime int      `yaml:"suggested_time" validate:"min=1,max=1440"`
	Weights       []Weight `yaml:"weights" validate:"unique=Code,dive"`
}

// Weight is the base weight of a task for one tag code.
type Weight struct {
	Code   string  `yaml:"code" validate:"required,tag_code"`
	Weight float64 `yaml:"weight" validate:"gte=0,lte=1"`
}

// Load parses and validates the embedded fixture called name.
func Load(name string) (*Fixture, error) {
	data, err := files.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown fixture %q: %w", name, err)
	}
	return Parse(data)
}

// Parse parses fixture YAML, sanitizes its text fields and validates it.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	for i := range f.Tags {
		f.Tags[i].Label = validation.SanitizeText(f.Tags[i].Label)
	}
	for i := range f.Tasks {
		f.Tasks[i].Description = validation.SanitizeText(f.Tasks[i].Description)
		for j := range f.Tasks[i].Mood {
			f.Tasks[i].Mood[j] = validation.SanitizeText(f.Tasks[i].Mood[j])
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks field constraints and that every tag code sits in its group.
// Weight codes are not checked against Tags: they may name tags seeded earlier.
func (f *Fixture) Validate() error {
	if err := validation.Struct(f); err != nil {
		return fmt.Errorf("invalid fixture %q: %w", f.Name, err)
	}
	for _, tag := range f.Tags {
		if group := validation.TagGroup(tag.Code); group != tag.Group {
			return fmt.Errorf("invalid fixture %q: tag %s is in group %q, not %q", f.Name, tag.Code, group, tag.Group)
		}
	}
	return nil
}

// HasWeights reports whether any task carries tag weights.
func (f *Fixture) HasWeights() bool {
	for _, t := range f.Tasks {
		if len(t.Weights) > 0 {
			return true
		}
	}
	return false
}

// TagDims converts the tag set to active tag_dim rows.
func (f *Fixture) TagDims() []*models.TagDim {
	out := make([]*models.TagDim, 0, len(f.Tags))
	for _, t := range f.Tags {
		out = append(out, &models.TagDim{
			Code:      t.Code,
			Label:     t.Label,
			GroupCode: t.Group,
			IsActive:  true,
		})
	}
	return out
}

// Model converts the task to a row ready for insertion.
func (t Task) Model() *models.Task {
	return &models.Task{
		Description:   t.Description,
		Mood:          append([]string(nil), t.Mood...),
		SuggestedTime: t.SuggestedTime,
	}
}
