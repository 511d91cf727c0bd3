package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/test-cloud/auto/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "test-key", r.FormValue("api_key"))
		assert.Equal(t, "floorplans", r.FormValue("folder"))

		timestamp := r.FormValue("timestamp")
		require.NotEmpty(t, timestamp)

		expected := sha1.Sum([]byte("folder=floorplans&timestamp=" + timestamp + "test-secret"))
		assert.Equal(t, hex.EncodeToString(expected[:]), r.FormValue("signature"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), contents)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UploadResult{
			PublicID:  "floorplans/abc123",
			SecureURL: "https://res.example.com/floorplans/abc123.png",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-cloud", "test-key", "test-secret", logrus.New())

	result, err := client.Upload(context.Background(), "plan.png", []byte("fake image bytes"), "floorplans")
	require.NoError(t, err)
	assert.Equal(t, "floorplans/abc123", result.PublicID)
	assert.Equal(t, "https://res.example.com/floorplans/abc123.png", result.SecureURL)
}

func TestClient_Upload_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid signature"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-cloud", "test-key", "wrong-secret", logrus.New())

	_, err := client.Upload(context.Background(), "plan.png", []byte("data"), "floorplans")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid signature")
}

func TestService_UploadFloorPlanFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "floorplans", r.FormValue("folder"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UploadResult{
			SecureURL:    "https://res.example.com/plan.png",
			ThumbnailURL: "https://res.example.com/plan_thumb.png",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-cloud", "test-key", "test-secret", logrus.New())
	service := NewService(client, logrus.New())

	fileURL, thumbnailURL, err := service.UploadFloorPlanFile(context.Background(), "plan.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/plan.png", fileURL)
	assert.Equal(t, "https://res.example.com/plan_thumb.png", thumbnailURL)
}

func TestService_ThumbnailFallsBackToFileURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UploadResult{
			SecureURL: "https://res.example.com/plan.png",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-cloud", "test-key", "test-secret", logrus.New())
	service := NewService(client, logrus.New())

	fileURL, thumbnailURL, err := service.UploadFloorPlanFile(context.Background(), "plan.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, fileURL, thumbnailURL)
}
