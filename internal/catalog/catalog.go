package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mboyd/boardbank/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when the property catalog is missing or
// malformed. The wrapped message carries the offending entry.
var ErrInvalidCatalog = errors.New("invalid property catalog")

// entry is the on-disk shape of one catalog record. Rent may be either
// a single scalar or a list of tiers in the source document.
type entry struct {
	Name       string    `json:"name" yaml:"name"`
	Price      int       `json:"price" yaml:"price"`
	Rent       rentTiers `json:"rent" yaml:"rent"`
	ColorGroup string    `json:"color_group" yaml:"color_group"`
}

// rentTiers unmarshals a rent field that is either a scalar or a list.
type rentTiers []int

func (r *rentTiers) UnmarshalJSON(data []byte) error {
	var tiers []int
	if err := json.Unmarshal(data, &tiers); err == nil {
		*r = tiers
		return nil
	}
	var single int
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("rent must be an integer or a list of integers")
	}
	*r = rentTiers{single}
	return nil
}

func (r *rentTiers) UnmarshalYAML(value *yaml.Node) error {
	var tiers []int
	if err := value.Decode(&tiers); err == nil {
		*r = tiers
		return nil
	}
	var single int
	if err := value.Decode(&single); err != nil {
		return fmt.Errorf("rent must be an integer or a list of integers")
	}
	*r = rentTiers{single}
	return nil
}

// Load reads the property catalog from a JSON or YAML file and returns
// the seeded registry entries, all bank-owned. The format is chosen by
// file extension; anything that is not .yaml/.yml parses as JSON.
func Load(path string) ([]*models.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var entries []entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	return build(entries)
}

func build(entries []entry) ([]*models.Property, error) {
	properties := make([]*models.Property, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d is missing a name", ErrInvalidCatalog, i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: duplicate property %q", ErrInvalidCatalog, e.Name)
		}
		if e.Price <= 0 {
			return nil, fmt.Errorf("%w: property %q has non-positive price %d", ErrInvalidCatalog, e.Name, e.Price)
		}
		if len(e.Rent) == 0 {
			return nil, fmt.Errorf("%w: property %q has no rent tiers", ErrInvalidCatalog, e.Name)
		}

		seen[e.Name] = true
		properties = append(properties, &models.Property{
			Name:       e.Name,
			Price:      e.Price,
			Rent:       append([]int(nil), e.Rent...),
			ColorGroup: e.ColorGroup,
		})
	}

	return properties, nil
}
