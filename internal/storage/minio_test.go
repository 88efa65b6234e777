package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/dealcraft/dealcraft-server/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestImageKey(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":             ".jpg",
		"dir/sub/pic.png":       ".png",
		`C:\Users\me\shot.webp`: ".webp",
		"noext":                 "",
		"weird.a-very-long-ext": "",
	}
	for in, ext := range cases {
		key := ImageKey(in)
		require.True(t, strings.HasPrefix(key, ImagePrefix), key)
		require.True(t, strings.HasSuffix(key, ext), "%s -> %s", in, key)
		id := strings.TrimSuffix(strings.TrimPrefix(key, ImagePrefix), ext)
		_, err := uuid.Parse(id)
		require.NoError(t, err, "key %s", key)
	}
	require.NotEqual(t, ImageKey("a.png"), ImageKey("a.png"))
}

func TestNewMinIOStorage_MissingEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{})
	require.Error(t, err)
}
