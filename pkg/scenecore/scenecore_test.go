package scenecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformLightStrategyEmpty(t *testing.T) {
	strat := NewUniformLightStrategy(nil)
	light, pdf := strat.SampleLights(0.5)
	assert.Nil(t, light)
	assert.Equal(t, 0.0, pdf)
}

func TestUniformLightStrategyPicksInRange(t *testing.T) {
	lights := []Light{nil, nil, nil}
	strat := NewUniformLightStrategy(lights)
	_, pdf := strat.SampleLights(0.99)
	assert.InDelta(t, 1.0/3.0, pdf, 1e-9)
	assert.InDelta(t, 1.0/3.0, strat.PickPdf(nil), 1e-9)
}
