// internal/database/seed.go
package database

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javajoker/shopbot/internal/models"
	"github.com/javajoker/shopbot/internal/utils"
)

//go:embed seeds/catalog.yaml
var defaultCatalog []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string `yaml:"name" validate:"trimmed_min=1,max=255"`
	Category    string `yaml:"category" validate:"trimmed_min=1,max=100"`
	Price       int64  `yaml:"price" validate:"min=0"`
	Description string `yaml:"description"`
}

// LoadSeedCatalog reads the seed catalog from path, or the embedded default
// when path is empty.
func LoadSeedCatalog(path string) ([]models.Product, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed catalog %s: %w", path, err)
		}
		data = raw
	}
	return ParseSeedCatalog(data)
}

func ParseSeedCatalog(data []byte) ([]models.Product, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	products := make([]models.Product, 0, len(file.Products))
	for i, p := range file.Products {
		if err := utils.ValidateStruct(p); err != nil {
			if errs := utils.GetValidationErrors(err); len(errs) > 0 {
				return nil, fmt.Errorf("seed product #%d: %s", i+1, errs[0].Message)
			}
			return nil, fmt.Errorf("seed product #%d: %w", i+1, err)
		}
		products = append(products, models.Product{
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
		})
	}
	return products, nil
}
