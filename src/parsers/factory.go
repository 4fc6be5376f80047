// src/parsers/factory.go
package parsers

import (
	"fmt"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/parsers/broker1"
	"github.com/username/policyfeed/src/parsers/broker2"
)

func GetNormalizer(source models.Source) (Normalizer, error) {
	switch source {
	case models.SourceBroker1:
		return broker1.NewNormalizer(), nil
	case models.SourceBroker2:
		return broker2.NewNormalizer(), nil
	default:
		return nil, fmt.Errorf("no normalizer available for source: %s", source)
	}
}
