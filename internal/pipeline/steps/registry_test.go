package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCoversRegistry(t *testing.T) {
	assert.Len(t, Order, len(Registry))
	for _, name := range Order {
		def, ok := Registry[name]
		require.True(t, ok, "step %s missing from registry", name)
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.Category)
	}
}

func TestDependenciesPrecedeTheirSteps(t *testing.T) {
	position := make(map[string]int, len(Order))
	for i, name := range Order {
		position[name] = i
	}
	for _, name := range Order {
		for _, dep := range Registry[name].Dependencies {
			assert.Less(t, position[dep], position[name],
				"dependency %s must run before %s", dep, name)
		}
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "extraction", Category(StepExtractDocuments))
	assert.Equal(t, "assessment", Category(StepValidateProfile))
	assert.Equal(t, "decision", Category(StepDecide))
	assert.Equal(t, "synthesis", Category(StepSummarizeCase))
	assert.Empty(t, Category("no_such_step"))
}

func TestValidateDependencies(t *testing.T) {
	err := ValidateDependencies(StepDecide, map[string]bool{
		StepScoreEligibility: true,
		StepValidateProfile:  true,
	})
	assert.NoError(t, err)

	err = ValidateDependencies(StepDecide, map[string]bool{
		StepScoreEligibility: true,
	})
	require.Error(t, err)
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, StepDecide, depErr.Step)
	assert.Equal(t, []string{StepValidateProfile}, depErr.MissingDependencies)

	err = ValidateDependencies("no_such_step", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}
