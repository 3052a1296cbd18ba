package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lu-ally/AllyTimeTracking/generic"
)

func TestMinutesToHours(t *testing.T) {
	assert.True(t, generic.MinutesToHours(480).Equal(generic.Hours(8)))
	assert.True(t, generic.MinutesToHours(90).Equal(generic.Hours(1.5)))
	assert.Equal(t, generic.UnitHours, generic.MinutesToHours(0).Unit)
}

func TestAmount_Arithmetic(t *testing.T) {
	a := generic.Days(30)
	b := generic.Days(35)

	diff := a.Sub(b)

	assert.True(t, diff.IsNegative())
	assert.True(t, diff.Equal(generic.Days(-5)))
	assert.Equal(t, -5.0, diff.Float64())
	assert.True(t, b.GreaterThan(a))
	assert.Equal(t, "-5 days", diff.String())
}
