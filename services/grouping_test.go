package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Hamuko/daiseihai/models"
)

func TestAnnotateParts(t *testing.T) {
	videos := []models.Video{
		{Date: models.NewDate(2018, time.July, 27), Order: 1},
		{Date: models.NewDate(2018, time.July, 28), Order: 1},
		{Date: models.NewDate(2018, time.July, 28), Order: 2},
	}

	AnnotateParts(videos)

	assert.Equal(t, 1, videos[0].Part)
	assert.Equal(t, 1, videos[0].PartCount)
	assert.Equal(t, 1, videos[1].Part)
	assert.Equal(t, 2, videos[1].PartCount)
	assert.Equal(t, 2, videos[2].Part)
	assert.Equal(t, 2, videos[2].PartCount)
}

func TestAnnotatePartsEmpty(t *testing.T) {
	AnnotateParts(nil)
	AnnotateParts([]models.Video{})
}

func TestAnnotatePartsSingleDay(t *testing.T) {
	videos := []models.Video{
		{Date: models.NewDate(2019, time.December, 6), Order: 1},
		{Date: models.NewDate(2019, time.December, 6), Order: 2},
		{Date: models.NewDate(2019, time.December, 6), Order: 3},
	}

	AnnotateParts(videos)

	for i, video := range videos {
		assert.Equal(t, i+1, video.Part)
		assert.Equal(t, 3, video.PartCount)
	}
}
