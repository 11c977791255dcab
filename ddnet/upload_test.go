package ddnet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadClient(t *testing.T) {
	t.Run("sends multipart form with token header", func(t *testing.T) {
		var gotToken, gotAssetType, gotMapName, gotFile string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("X-DDNet-Token")
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotAssetType = r.FormValue("asset_type")
			gotMapName = r.FormValue("map_name")

			file, _, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			buf := make([]byte, 16)
			n, _ := file.Read(buf)
			gotFile = string(buf[:n])
		}))
		defer srv.Close()

		client := NewUploadClient(srv.URL, "secret", 5*time.Second)
		status, err := client.Upload(context.Background(), AssetMap, strings.NewReader("map bytes"), "kobra_3")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "secret", gotToken)
		assert.Equal(t, "map", gotAssetType)
		assert.Equal(t, "kobra_3", gotMapName)
		assert.Equal(t, "map bytes", gotFile)
	})

	t.Run("non-200 is returned as status, not error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad map", http.StatusBadRequest)
		}))
		defer srv.Close()

		client := NewUploadClient(srv.URL, "secret", 5*time.Second)
		status, err := client.Upload(context.Background(), AssetMap, strings.NewReader("x"), "kobra_3")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown asset type", func(t *testing.T) {
		client := NewUploadClient("http://localhost", "secret", time.Second)
		_, err := client.Upload(context.Background(), AssetType("bogus"), strings.NewReader("x"), "name")
		assert.Error(t, err)
	})
}

func TestAssetNameFields(t *testing.T) {
	cases := map[AssetType]string{
		AssetMap:        "map_name",
		AssetLog:        "channel_name",
		AssetAttachment: "asset_name",
		AssetAvatar:     "asset_name",
		AssetEmoji:      "asset_name",
	}
	for asset, want := range cases {
		field, ok := asset.nameField()
		assert.True(t, ok)
		assert.Equal(t, want, field)
	}
}
