package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryKeyword(t *testing.T) {
	assert.Equal(t, "", CategoryKeyword(""))
	assert.Equal(t, "", CategoryKeyword("all"))
	assert.Equal(t, "urgent care", CategoryKeyword("urgent_care"))
	assert.Equal(t, "medical clinic", CategoryKeyword("clinic"))
	assert.Equal(t, "optometrist", CategoryKeyword("Optometrist"))
}

func TestIsHealthCategory(t *testing.T) {
	assert.True(t, IsHealthCategory("Children's Hospital"))
	assert.True(t, IsHealthCategory("Mental health service"))
	assert.False(t, IsHealthCategory("Coffee shop"))
}
