package drive

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestService_DisabledWithoutCredentials(t *testing.T) {
	ctx := context.Background()
	service := NewService(ctx, "does-not-exist.json", logrus.New())

	assert.False(t, service.Enabled())
	assert.Empty(t, service.CreateFolder(ctx, "Floorplans", ""))
	assert.Empty(t, service.UploadFile(ctx, "plan.png", "folder-1", "image/png"))
	assert.Empty(t, service.FindFolder(ctx, "Floorplans", ""))
}
