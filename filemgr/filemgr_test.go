package filemgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureSafeFilename(t *testing.T) {
	assert.Equal(t, "hall_photo.jpg", ensureSafeFilename("Hall Photo.JPG", ".jpg"))
	assert.Equal(t, "abc-1.png", ensureSafeFilename("abc-1.png", ".png"))

	// hostile names collapse to a generated one
	got := ensureSafeFilename("../../../../etc/passwd", ".jpg")
	assert.NotContains(t, got, "/")
	assert.NotContains(t, got, "..")
}

func TestExtensionAllowList(t *testing.T) {
	assert.True(t, isExtensionAllowed(".jpg"))
	assert.True(t, isExtensionAllowed(".png"))
	assert.False(t, isExtensionAllowed(".exe"))
	assert.False(t, isExtensionAllowed(".svg"))
}

func TestMIMEAllowList(t *testing.T) {
	assert.True(t, isMIMEAllowed("image/jpeg"))
	assert.False(t, isMIMEAllowed("application/octet-stream"))
	assert.False(t, isMIMEAllowed("text/html"))
}
