package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

func TestValidateTeams(t *testing.T) {
	tests := []struct {
		name    string
		format  models.GameFormat
		count   int
		wantErr error
	}{
		{name: "one vs one exact", format: models.FormatOneVsOne, count: 2},
		{name: "one vs one too many", format: models.FormatOneVsOne, count: 3, wantErr: ErrTeamCount},
		{name: "two vs two exact", format: models.FormatTwoVsTwo, count: 2},
		{name: "two vs two too few", format: models.FormatTwoVsTwo, count: 1, wantErr: ErrTeamCount},
		{name: "round robin minimum", format: models.FormatRoundRobin, count: 2},
		{name: "round robin large group", format: models.FormatRoundRobin, count: 9},
		{name: "round robin single team", format: models.FormatRoundRobin, count: 1, wantErr: ErrTeamCount},
		{name: "quick knockout minimum", format: models.FormatQuickKnockout, count: 2},
		{name: "quick knockout odd count", format: models.FormatQuickKnockout, count: 5},
		{name: "quick knockout empty", format: models.FormatQuickKnockout, count: 0, wantErr: ErrTeamCount},
		{name: "pickle minimum", format: models.FormatPickle, count: 4},
		{name: "pickle below minimum", format: models.FormatPickle, count: 3, wantErr: ErrTeamCount},
		{name: "unknown format", format: models.GameFormat("tennis"), count: 4, wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTeams(tt.format, tt.count)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSpecCatalogCoversAllFormats(t *testing.T) {
	for _, format := range Formats() {
		spec, ok := Spec(format)
		require.True(t, ok, "format %s missing from catalog", format)
		assert.Equal(t, format, spec.Format)
		assert.Greater(t, spec.MinTeams, 0)
		assert.Greater(t, spec.MaxRounds, 0)
	}

	_, ok := Spec(models.GameFormat("badminton"))
	assert.False(t, ok)
}

func TestSpecRoundCeilings(t *testing.T) {
	oneVsOne, _ := Spec(models.FormatOneVsOne)
	assert.Equal(t, 1, oneVsOne.MaxRounds)

	knockout, _ := Spec(models.FormatQuickKnockout)
	assert.Equal(t, 3, knockout.MaxRounds)

	pickle, _ := Spec(models.FormatPickle)
	assert.Equal(t, 3, pickle.MaxRounds)
	assert.Equal(t, 4, pickle.MinTeams)
}
