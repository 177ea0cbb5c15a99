package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllKindsDisplayOrder(t *testing.T) {
	assert.Equal(t, []BicycleKind{KindMens, KindLadies, KindChildSmall, KindChildBig}, AllKinds())
}

func TestKindValidity(t *testing.T) {
	for _, k := range AllKinds() {
		assert.True(t, k.Valid(), "kind %d", k)
	}
	assert.False(t, BicycleKind(0).Valid())
	assert.False(t, BicycleKind(5).Valid())
}

func TestKindLabels(t *testing.T) {
	assert.Equal(t, "men's bicycle", KindMens.Label())
	assert.Equal(t, "ladies' bicycle", KindLadies.Label())
	assert.Equal(t, "children's bicycle small", KindChildSmall.Label())
	assert.Equal(t, "children's bicycle big", KindChildBig.Label())
	assert.Equal(t, "unknown", BicycleKind(9).Label())
}
