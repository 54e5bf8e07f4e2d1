package catalog

import (
	"errors"
	"testing"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %T", err)
	assert.Equal(t, code, de.Code)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(" Diagnostic Devices ", "Thermometers and monitors", "https://cdn.example.com/c.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Diagnostic Devices", c.Name)
	assert.Equal(t, "diagnostic-devices", c.Slug)

	_, err = NewCategory("", "d", "u")
	assertDomainCode(t, err, "INVALID_NAME")
	_, err = NewCategory("n", " ", "u")
	assertDomainCode(t, err, "INVALID_DESCRIPTION")
	_, err = NewCategory("n", "d", "")
	assertDomainCode(t, err, "INVALID_IMAGE")
}

func TestCategory_Update(t *testing.T) {
	c, _ := NewCategory("Masks", "Face masks", "https://cdn.example.com/m.jpg")

	require.NoError(t, c.Update("Face Masks", "All masks", "https://cdn.example.com/m2.jpg"))
	assert.Equal(t, "face-masks", c.Slug)
	assert.Equal(t, 2, c.GetVersion())

	assert.Error(t, c.Update("Face Masks", "", "x"))
	assert.Equal(t, "All masks", c.Description)
}
