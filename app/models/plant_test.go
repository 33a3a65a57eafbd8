package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestPlantInputClean(t *testing.T) {
	t.Parallel()

	in := PlantInput{
		Genus:      "Trichocereus",
		Species:    strptr("none"),
		GroundType: strptr("none"),
		Cultivar:   strptr(""),
	}
	in.Clean()

	assert.Equal(t, "Trichocereus", in.Genus)
	assert.Nil(t, in.Species)
	assert.Nil(t, in.GroundType)
	assert.Nil(t, in.Cultivar)
}

func TestPlantInputCleanKeepsPopulatedFields(t *testing.T) {
	t.Parallel()

	in := PlantInput{
		Genus:    "  Ariocarpus ",
		Species:  strptr("retusus"),
		Cultivar: strptr(" cv. Godzilla "),
		Mutation: strptr("None"), // case-insensitive placeholder
	}
	in.Clean()

	assert.Equal(t, "Ariocarpus", in.Genus)
	assert.Equal(t, "retusus", *in.Species)
	assert.Equal(t, "cv. Godzilla", *in.Cultivar)
	assert.Nil(t, in.Mutation)
}

func TestPlantDisplayName(t *testing.T) {
	t.Parallel()

	p := Plant{Genus: "Trichocereus", Species: strptr("pachanoi")}
	assert.Equal(t, "Trichocereus pachanoi", p.DisplayName())

	p = Plant{Genus: "Lophophora"}
	assert.Equal(t, "Lophophora", p.DisplayName())

	p = Plant{Genus: "Echinopsis", Species: strptr("eyriesii"), Cultivar: strptr("Haku")}
	assert.Equal(t, "Echinopsis eyriesii 'Haku'", p.DisplayName())
}
