// Package authors loads the list of target creators for a run.
package authors

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"biliscraper/pkg/errors"
	"biliscraper/pkg/logger"
	"biliscraper/pkg/models"
	"biliscraper/pkg/space"
)

// Load reads the target author list. JSON is the primary format; a
// .yaml or .yml path decodes the same shape. Input order is preserved
// and an empty list is valid.
//
// Author IDs are normalized on the way in, so a pasted space URL works
// as well as a bare numeric UID. An entry without an author_id is a
// configuration error.
func Load(path string) ([]models.AuthorRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.KindConfig, err, "read authors file %s", path)
	}

	var refs []models.AuthorRef
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &refs); err != nil {
			return nil, errors.Wrapf(errors.KindConfig, err, "parse authors file %s", path)
		}
	default:
		if err := json.Unmarshal(data, &refs); err != nil {
			return nil, errors.Wrapf(errors.KindConfig, err, "parse authors file %s", path)
		}
	}

	log := logger.GetLogger()
	for i := range refs {
		refs[i].AuthorID = space.SanitizeAuthorID(refs[i].AuthorID)
		if refs[i].AuthorID == "" {
			return nil, errors.Newf(errors.KindConfig, "authors file %s: entry %d has no author_id", path, i+1)
		}
		if !space.IsValidAuthorID(refs[i].AuthorID) {
			log.WithFields(map[string]interface{}{
				"author_id": refs[i].AuthorID,
				"entry":     i + 1,
			}).Warn("Author ID is not a numeric UID")
		}
	}

	return refs, nil
}
