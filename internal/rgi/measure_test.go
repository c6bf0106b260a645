package rgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeasurements(t *testing.T) {
	vals := ParseMeasurements("frente de 12,50 m e área de 1.234,56 m² construída, sendo 30 m2 de garagem")
	assert.Equal(t, []float64{12.5, 1234.56, 30}, vals)
}

func TestParseMeasurementsRejectsNonUnitSuffixes(t *testing.T) {
	assert.Empty(t, ParseMeasurements("percorre 10 metros até o marco"))
	assert.Empty(t, ParseMeasurements("volume de 10 m3"))
	assert.Empty(t, ParseMeasurements("sem medidas"))
}

func TestInferAreaSimpleRectangle(t *testing.T) {
	v, ok := InferArea("10,00 m por 20,50 m")
	require.True(t, ok)
	assert.InDelta(t, 205.0, v, 1e-9)
}

func TestInferAreaSingleDistinctValue(t *testing.T) {
	// Two identical measurements collapse to one distinct value.
	_, ok := InferArea("frente 10,00 m fundos 10,00 m")
	assert.False(t, ok)
}

func TestInferAreaNoMeasurements(t *testing.T) {
	_, ok := InferArea("sem medidas")
	assert.False(t, ok)
}

func TestInferAreaRejectsPathologicalProduct(t *testing.T) {
	_, ok := InferArea("1.000,00 m por 2.000,00 m")
	assert.False(t, ok)
}

func TestInferAreaRanksByFrequencyThenMagnitude(t *testing.T) {
	// 10 appears twice; among the single mentions the larger one wins the tie.
	v, ok := InferArea("frente 10,00 m", "lateral esquerda 10,00 m", "fundos 25,00 m", "lateral direita 30,00 m")
	require.True(t, ok)
	assert.InDelta(t, 300.0, v, 1e-9)
}

func TestInferAreaAcrossMultipleTexts(t *testing.T) {
	v, ok := InferArea("frente: 8,00 m", "", "fundos: 25,00 m")
	require.True(t, ok)
	assert.InDelta(t, 200.0, v, 1e-9)
}
