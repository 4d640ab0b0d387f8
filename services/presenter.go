package services

import (
	"fmt"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
)

// presentVideo fills in the calculated read-side fields of a video: the
// resolved download link, the chat log URL when the chat is usable, and
// the display date label. The ordinal suffix appears only when more
// than one video shares the date, so AnnotateParts must run first for
// tournament feeds.
func presentVideo(v *models.Video, cfg *config.Config) {
	v.Link = v.ResolveLink(cfg.VideoBaseURL)
	if v.HasChat() && v.Chat != nil {
		v.ChatURL = v.Chat.URL(cfg.CDNBaseURL)
	}
	if v.PartCount > 1 {
		v.DateLabel = fmt.Sprintf("%s (%d/%d)", v.Date.Label(), v.Part, v.PartCount)
	} else {
		v.DateLabel = v.Date.Label()
	}
}

func presentVideos(videos []models.Video, cfg *config.Config) {
	for i := range videos {
		presentVideo(&videos[i], cfg)
	}
}
