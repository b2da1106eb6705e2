package http

import (
	"context"
	"testing"
	"time"

	"github.com/akulikov/reviewdeck/internal/core/app"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNewServer(t *testing.T) {
	appInstance := &app.App{}

	server := NewServer(":8080", appInstance, "en")

	assert.NotNil(t, server)
	assert.NotNil(t, server.server)
	assert.Equal(t, ":8080", server.server.Addr)
	assert.Equal(t, appInstance, server.app)
	assert.Equal(t, language.English, server.locale)
}

func TestNewServer_UnknownLocale(t *testing.T) {
	server := NewServer(":0", &app.App{}, "fr-CA")

	assert.NotNil(t, server)
}

func TestServer_Shutdown(t *testing.T) {
	server := NewServer(":0", &app.App{}, "en")

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	// Server never started, shutdown is a no-op.
	err := server.Shutdown(ctx)
	assert.NoError(t, err)
}
