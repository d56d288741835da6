package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority_PersistentValueRoundTrip(t *testing.T) {
	for _, p := range []Priority{PriorityLowest, PriorityLow, PriorityNormal, PriorityHigh, PriorityHighest} {
		got, err := PriorityFromPersistentValue(p.PersistentValue())
		require.NoError(t, err, p.String())
		assert.Equal(t, p, got)
	}
}

func TestPriority_PersistentCodesAreHistorical(t *testing.T) {
	// Codes predate the enum ordering and must stay as written.
	assert.Equal(t, 3, PriorityLowest.PersistentValue())
	assert.Equal(t, 0, PriorityLow.PersistentValue())
	assert.Equal(t, 1, PriorityNormal.PersistentValue())
	assert.Equal(t, 2, PriorityHigh.PersistentValue())
	assert.Equal(t, 4, PriorityHighest.PersistentValue())
}

func TestPriorityFromPersistentValue_UnknownCode(t *testing.T) {
	got, err := PriorityFromPersistentValue(99)
	assert.Error(t, err)
	assert.Equal(t, PriorityNormal, got)
}

func TestConstraintType_PersistentValueRoundTrip(t *testing.T) {
	for _, c := range []ConstraintType{ConstraintStartStart, ConstraintFinishStart, ConstraintFinishFinish, ConstraintStartFinish} {
		got, err := ConstraintTypeFromPersistentValue(c.PersistentValue())
		require.NoError(t, err, c.String())
		assert.Equal(t, c, got)
	}
}

func TestConstraintTypeFromPersistentValue_UnknownCode(t *testing.T) {
	got, err := ConstraintTypeFromPersistentValue(0)
	assert.Error(t, err)
	assert.Equal(t, ConstraintFinishStart, got)
}

func TestValidHardness(t *testing.T) {
	assert.True(t, ValidHardness[string(HardnessStrong)])
	assert.True(t, ValidHardness[string(HardnessRubber)])
	assert.False(t, ValidHardness["Soft"])
}
