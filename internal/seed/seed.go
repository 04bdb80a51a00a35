// Package seed imports an initial group directory from YAML files.
package seed

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/logger"
	"study-archive-backend/internal/service"

	"gopkg.in/yaml.v3"
)

// GroupData is one group as written in a seed file
type GroupData struct {
	Name             string `yaml:"name"`
	Link             string `yaml:"link"`
	Platform         string `yaml:"platform"`
	Description      string `yaml:"description"`
	Language         string `yaml:"language"`
	AdminContact     string `yaml:"admin_contact,omitempty"`
	AdminContactType string `yaml:"admin_contact_type,omitempty"`
}

// GroupsFile is the top-level layout of a seed file
type GroupsFile struct {
	Groups []GroupData `yaml:"groups"`
}

// Result counts what an import did
type Result struct {
	Created  int
	Existing int
}

// LoadGroups reads every *.yaml file under dataDir whose path mentions "groups"
func LoadGroups(dataDir string) ([]GroupData, error) {
	var allGroups []GroupData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(filepath.Base(path), "groups") {
			var file GroupsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			allGroups = append(allGroups, file.Groups...)
		}
		return nil
	})

	return allGroups, err
}

// Import creates each group through the directory service. Groups that
// duplicate an existing entry are counted and skipped, so re-running a seed
// is harmless. Any other error stops the import.
func Import(ctx context.Context, groups service.GroupServiceInterface, data []GroupData) (Result, error) {
	log := logger.WithContext(ctx)
	var result Result

	for _, g := range data {
		_, err := groups.Create(ctx, &service.CreateGroupRequest{
			Name:             g.Name,
			Link:             g.Link,
			Platform:         g.Platform,
			Description:      g.Description,
			Language:         g.Language,
			AdminContact:     g.AdminContact,
			AdminContactType: g.AdminContactType,
		})
		switch {
		case err == nil:
			result.Created++
		case apperrors.IsDuplicate(err):
			log.WithField("name", g.Name).Debug("Seed group already present")
			result.Existing++
		default:
			return result, fmt.Errorf("failed to create group %q: %w", g.Name, err)
		}
	}

	return result, nil
}
