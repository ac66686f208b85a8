package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCabClass(t *testing.T) {
	testCases := []struct {
		in   string
		want CabClass
	}{
		{"ECONOMY", CabClassEconomy},
		{"sedan", CabClassSedan},
		{" Suv ", CabClassSUV},
		{"luxury", CabClassLuxury},
		{"mini", CabClassEconomy},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCabClass(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCabClass_Unknown(t *testing.T) {
	_, err := ParseCabClass("HELICOPTER")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCabClass))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "ECONOMY, SEDAN, SUV, LUXURY")
}

func TestRates(t *testing.T) {
	r, err := CabClassSUV.Rates()
	require.NoError(t, err)
	assert.Equal(t, CabRates{DisplayName: "SUV", BaseFare: 120, PerKm: 20, PerMinute: 3, Capacity: 6}, r)

	_, err = CabClass("BOAT").Rates()
	assert.True(t, errors.Is(err, ErrInvalidCabClass))
}

func TestCabClasses_ReturnsCopy(t *testing.T) {
	classes := CabClasses()
	require.Len(t, classes, 4)
	classes[0] = "BOAT"
	assert.Equal(t, CabClassEconomy, CabClasses()[0])
}
