package services

import (
	"github.com/Hamuko/daiseihai/models"
)

// AnnotateParts fills in each video's 1-based position and sibling count
// among the videos sharing its broadcast date, used for "July 28, 2018
// (1/2)" style labels. The input must already be sorted by (date, order)
// ascending; duplicate (date, order) pairs within one tournament are a
// storage-invariant violation and are not resolved here.
func AnnotateParts(videos []models.Video) {
	start := 0
	for start < len(videos) {
		end := start + 1
		for end < len(videos) && videos[end].Date.String() == videos[start].Date.String() {
			end++
		}
		for i := start; i < end; i++ {
			videos[i].Part = i - start + 1
			videos[i].PartCount = end - start
		}
		start = end
	}
}
