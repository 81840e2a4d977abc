package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePNG(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GeneratePNG("card:4111 1111 1111 1111 holder:TSMARKET LLC")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 0x50, 0x4E, 0x47}))
}

func TestGeneratePNGEmptyContent(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.GeneratePNG("")
	require.Error(t, err)
}
