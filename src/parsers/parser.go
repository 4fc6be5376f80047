package parsers

import (
	"github.com/username/policyfeed/src/models"
)

// Normalizer maps one broker's raw documents onto CanonicalPolicy.
type Normalizer interface {
	Source() models.Source
	Normalize(raw models.RawRecord) (models.CanonicalPolicy, error)
}
