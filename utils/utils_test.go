package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomName(t *testing.T) {
	name := RandomName("Keras YOLO3")
	assert.True(t, strings.HasPrefix(name, "keras-yolo3_"), name)
	assert.Len(t, name, len("keras-yolo3_")+10)
	assert.NotEqual(t, name, RandomName("Keras YOLO3"))
}

func TestRandomNameEmptyPrefix(t *testing.T) {
	assert.Len(t, RandomName("!!"), 10)
}

func TestResourceName(t *testing.T) {
	name := ResourceName("demo", "s1/rg1/demo", "st", 24)
	assert.Regexp(t, `^demo[0-9a-f]{8}st$`, name)
	assert.Equal(t, name, ResourceName("demo", "s1/rg1/demo", "st", 24))
	assert.NotEqual(t, name, ResourceName("demo", "s2/rg1/demo", "st", 24))
}

func TestResourceNameFitsAndStartsWithLetter(t *testing.T) {
	long := ResourceName(strings.Repeat("a", 40), "scope", "kv", 24)
	assert.Len(t, long, 24)
	assert.True(t, strings.HasSuffix(long, "kv"))

	numeric := ResourceName("3d-Models", "scope", "kv", 24)
	assert.Regexp(t, `^a3dmodels[0-9a-f]{8}kv$`, numeric)

	empty := ResourceName("--", "scope", "st", 24)
	assert.Regexp(t, `^a[0-9a-f]{8}st$`, empty)
}
