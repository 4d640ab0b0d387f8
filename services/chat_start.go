package services

import (
	"time"
)

// DeriveChatStart computes the effective chat start timestamp (epoch
// milliseconds) for a video edit.
//
// An explicitly supplied chat_start always wins and the helper inputs
// are ignored. Otherwise, when both helpers are present,
//
//	chat_start = chatTimestamp - trunc(videoTimestamp in milliseconds)
//
// where chatTimestamp is a chat-relative epoch timestamp and
// videoTimestamp is how far into the video that chat message appears.
// A zero helper counts as absent; with either helper missing the result
// is nil and the video keeps no chat start.
func DeriveChatStart(explicit *int64, chatTimestamp *int64, videoTimestamp *time.Duration) *int64 {
	if explicit != nil {
		return explicit
	}
	if chatTimestamp == nil || *chatTimestamp == 0 {
		return nil
	}
	if videoTimestamp == nil || *videoTimestamp == 0 {
		return nil
	}
	start := *chatTimestamp - videoTimestamp.Milliseconds()
	return &start
}
