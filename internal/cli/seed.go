package cli

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oseiserwaa/kitchen/internal/app"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedCategory struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DisplayOrder *int   `yaml:"display_order"`
}

type SeedMenuItem struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Category    string  `yaml:"category"`
	Image       string  `yaml:"image"`
	Featured    bool    `yaml:"featured"`
	Available   *bool   `yaml:"available"`
	SpicyLevel  int     `yaml:"spicy_level"`
}

// SeedData is the shape of a seed file. Content values are arbitrary YAML
// that is stored as the equivalent JSON document.
type SeedData struct {
	Categories []SeedCategory `yaml:"categories"`
	Menu       []SeedMenuItem `yaml:"menu"`
	Content    map[string]any `yaml:"content"`
}

type SeedReport struct {
	ContentWritten    []string
	ContentSkipped    []string
	CategoriesCreated int
	CategoriesSkipped int
	MenuCreated       int
	// MenuSkipped is set when the menu already had items
	MenuSkipped bool
}

// ParseSeed decodes a seed file
func ParseSeed(data []byte) (*SeedData, error) {
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// DefaultSeed is the restaurant's starter content
func DefaultSeed() *SeedData {
	seed, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return seed
}

// Seed inserts whatever is missing. Content keys already saved are left
// alone, categories are matched by id and menu items are only added to an
// empty menu, so running it twice changes nothing.
func Seed(ctx context.Context, s *app.Services, seed *SeedData) (*SeedReport, error) {
	report := &SeedReport{}

	keys := make([]string, 0, len(seed.Content))
	for k := range seed.Content {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		raw, err := json.Marshal(seed.Content[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode content %s: %w", k, err)
		}
		written, err := s.Content.SetIfAbsent(ctx, domain.ContentKey(k), raw)
		if err != nil {
			return nil, fmt.Errorf("failed to seed content %s: %w", k, err)
		}
		if written {
			report.ContentWritten = append(report.ContentWritten, k)
		} else {
			report.ContentSkipped = append(report.ContentSkipped, k)
		}
	}

	existing, err := s.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.ID] = true
	}
	for _, c := range seed.Categories {
		in := &domain.CategoryInput{Name: &c.Name, Description: &c.Description, DisplayOrder: c.DisplayOrder}
		if c.ID != "" {
			in.ID = &c.ID
		}
		id := c.ID
		if id == "" {
			id = domain.Slugify(c.Name)
		}
		if have[id] {
			report.CategoriesSkipped++
			continue
		}
		if _, err := s.Categories.Create(ctx, in); err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
		have[id] = true
		report.CategoriesCreated++
	}

	menu, err := s.Menu.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(menu) > 0 {
		report.MenuSkipped = true
		return report, nil
	}
	for _, m := range seed.Menu {
		in := &domain.MenuItemInput{
			Name:        &m.Name,
			Description: &m.Description,
			Price:       &m.Price,
			Category:    &m.Category,
			Image:       &m.Image,
			Featured:    &m.Featured,
			Available:   m.Available,
			SpicyLevel:  &m.SpicyLevel,
		}
		if _, err := s.Menu.Create(ctx, in); err != nil {
			return nil, fmt.Errorf("failed to seed menu item %s: %w", m.Name, err)
		}
		report.MenuCreated++
	}
	return report, nil
}

func newSeedCommand(r *root) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert default content, categories and menu items",
		RunE: r.run(func(cmd *cobra.Command, args []string, e *env) error {
			seed := DefaultSeed()
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read seed file: %w", err)
				}
				if seed, err = ParseSeed(data); err != nil {
					return err
				}
			}

			report, err := Seed(cmd.Context(), e.services, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range report.ContentWritten {
				success.Fprintf(out, "+ content %s\n", k)
			}
			for _, k := range report.ContentSkipped {
				warning.Fprintf(out, "= content %s already set\n", k)
			}
			success.Fprintf(out, "+ %d categories created (%d existed)\n", report.CategoriesCreated, report.CategoriesSkipped)
			if report.MenuSkipped {
				warning.Fprintln(out, "= menu already has items, skipped")
			} else {
				success.Fprintf(out, "+ %d menu items created\n", report.MenuCreated)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to the built-in seed)")
	return cmd
}
