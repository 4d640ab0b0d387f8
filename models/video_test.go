package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVideoHasChat(t *testing.T) {
	chatID := uuid.New()
	chatStart := int64(1576948397378)
	zero := int64(0)

	video := Video{ChatID: &chatID, ChatStart: &chatStart}
	assert.True(t, video.HasChat())

	video = Video{ChatID: &chatID, ChatStart: &zero}
	assert.False(t, video.HasChat())

	video = Video{ChatID: &chatID}
	assert.False(t, video.HasChat())

	video = Video{ChatStart: &chatStart}
	assert.False(t, video.HasChat())
}

func TestVideoResolveLink(t *testing.T) {
	video := Video{Filename: "broadcast.mp4"}
	assert.Equal(t, "https://videos.example.com/broadcast.mp4",
		video.ResolveLink("https://videos.example.com/"))

	// An absolute URL wins over the filename.
	video = Video{Filename: "broadcast.mp4", URL: "https://mirror.example.com/broadcast.mp4"}
	assert.Equal(t, "https://mirror.example.com/broadcast.mp4",
		video.ResolveLink("https://videos.example.com/"))

	video = Video{}
	assert.Equal(t, "", video.ResolveLink("https://videos.example.com/"))
}
