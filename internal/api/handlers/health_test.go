package handlers

import (
	"net/http"
	"testing"

	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_Info(t *testing.T) {
	handler := NewHealthHandler(nil)

	engine := gin.New()
	engine.GET("/api/", handler.HandleInfo)

	recorder := doJSON(t, engine, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var info models.InfoResponse
	decodeBody(t, recorder, &info)
	assert.Equal(t, "3D Floor Plan API", info.Message)
	assert.Equal(t, "1.0.0", info.Version)
}
