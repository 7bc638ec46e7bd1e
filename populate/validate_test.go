package populate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDepth(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		wantPath string
	}{
		{name: "single reference", paths: []string{"leader"}},
		{name: "nested reference", paths: []string{"leader.studiedAt"}},
		{name: "array root", paths: []string{"members.studiedAt"}},
		{name: "deep array reference", paths: []string{"leader.teams"}, wantPath: "leader.teams"},
		{name: "deep scalar array", paths: []string{"leader.nicknames"}, wantPath: "leader.nicknames"},
		{name: "deep array under array root", paths: []string{"members.teams"}, wantPath: "members.teams"},
		{name: "deep array with valid sibling", paths: []string{"leader.studiedAt", "leader.teams.leader"}, wantPath: "leader.teams"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustBuild(t, tt.paths...)
			err := ValidateDepth(f.Trees()[0])
			if tt.wantPath == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedDepth))
			var pe *PathError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantPath, pe.Path)
			assert.Contains(t, err.Error(), `"`+tt.wantPath+`"`)
		})
	}
}
