package brackets

import (
	"errors"
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

var (
	ErrUnknownFormat = errors.New("unknown game format")
	ErrTeamCount     = errors.New("team count not allowed for format")
)

// FormatSpec describes the structural constraints of one game format.
// ExactTeams of zero means any count of at least MinTeams is accepted.
type FormatSpec struct {
	Format     models.GameFormat
	MinTeams   int
	ExactTeams int
	MaxRounds  int
}

var formatCatalog = map[models.GameFormat]FormatSpec{
	models.FormatOneVsOne: {
		Format:     models.FormatOneVsOne,
		MinTeams:   2,
		ExactTeams: 2,
		MaxRounds:  1,
	},
	models.FormatTwoVsTwo: {
		Format:     models.FormatTwoVsTwo,
		MinTeams:   2,
		ExactTeams: 2,
		MaxRounds:  1,
	},
	models.FormatRoundRobin: {
		Format:    models.FormatRoundRobin,
		MinTeams:  2,
		MaxRounds: 1,
	},
	models.FormatQuickKnockout: {
		Format:    models.FormatQuickKnockout,
		MinTeams:  2,
		MaxRounds: 3,
	},
	models.FormatPickle: {
		Format:    models.FormatPickle,
		MinTeams:  4,
		MaxRounds: 3,
	},
}

// Spec looks up the catalog entry for a format.
func Spec(format models.GameFormat) (FormatSpec, bool) {
	spec, ok := formatCatalog[format]
	return spec, ok
}

// Formats lists every supported format in a stable order.
func Formats() []models.GameFormat {
	return []models.GameFormat{
		models.FormatOneVsOne,
		models.FormatTwoVsTwo,
		models.FormatRoundRobin,
		models.FormatQuickKnockout,
		models.FormatPickle,
	}
}

// ValidateTeams rejects a format/team-count combination before any match
// is generated, so a failed creation leaves no partial state behind.
func ValidateTeams(format models.GameFormat, count int) error {
	spec, ok := formatCatalog[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if spec.ExactTeams > 0 && count != spec.ExactTeams {
		return fmt.Errorf("%w: %s requires exactly %d teams, got %d", ErrTeamCount, format, spec.ExactTeams, count)
	}
	if count < spec.MinTeams {
		return fmt.Errorf("%w: %s requires at least %d teams, got %d", ErrTeamCount, format, spec.MinTeams, count)
	}
	return nil
}
