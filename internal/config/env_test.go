package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpersFallBackToDefaults(t *testing.T) {
	assert.Equal(t, "fallback", envStr("BH_TEST_UNSET", "fallback"))
	assert.Equal(t, 200, envInt("BH_TEST_UNSET", 200))
	assert.Equal(t, true, envBool("BH_TEST_UNSET", true))
	assert.Equal(t, 15*time.Second, envDur("BH_TEST_UNSET", 15*time.Second))
}

func TestEnvHelpersReadValues(t *testing.T) {
	t.Setenv("BH_TEST_STR", "x")
	t.Setenv("BH_TEST_INT", "7")
	t.Setenv("BH_TEST_BOOL", "off")
	t.Setenv("BH_TEST_DUR", "30s")

	assert.Equal(t, "x", envStr("BH_TEST_STR", "fallback"))
	assert.Equal(t, 7, envInt("BH_TEST_INT", 200))
	assert.Equal(t, false, envBool("BH_TEST_BOOL", true))
	assert.Equal(t, 30*time.Second, envDur("BH_TEST_DUR", time.Second))
}

func TestEnvHelpersIgnoreGarbage(t *testing.T) {
	t.Setenv("BH_TEST_INT", "not-a-number")
	t.Setenv("BH_TEST_BOOL", "maybe")
	t.Setenv("BH_TEST_DUR", "soon")

	assert.Equal(t, 200, envInt("BH_TEST_INT", 200))
	assert.Equal(t, true, envBool("BH_TEST_BOOL", true))
	assert.Equal(t, time.Second, envDur("BH_TEST_DUR", time.Second))
}
