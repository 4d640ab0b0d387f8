package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
	"github.com/Hamuko/daiseihai/utils"
)

type VideoService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewVideoService(db *gorm.DB, cfg *config.Config) *VideoService {
	return &VideoService{DB: db, Cfg: cfg}
}

// GetBookmarks serves the legacy JSON bookmark feed: an array of
// {name, position} with the position in seconds, ascending. An unknown
// video or one without bookmarks yields an empty array, never an error.
func (s *VideoService) GetBookmarks(c *fiber.Ctx) error {
	feed := make([]fiber.Map, 0)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.JSON(feed)
	}

	var bookmarks []models.VideoBookmark
	if err := s.DB.Where("video_id = ?", id).Order("position").Find(&bookmarks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load bookmarks"})
	}
	for i := range bookmarks {
		feed = append(feed, fiber.Map{
			"name":     bookmarks[i].Name,
			"position": bookmarks[i].Seconds(),
		})
	}
	return c.JSON(feed)
}

// LegacyRedirect maps an old numeric video address to the current
// (tournament, date[, order]) scheme with a 302. The ordinal segment is
// appended only when the video's order is not 1 or another video shares
// the same tournament and date; the query string is preserved verbatim.
func (s *VideoService) LegacyRedirect(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	}

	var video models.Video
	err = s.DB.Preload("Tournament").First(&video, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load video"})
	}

	var siblings int64
	err = s.DB.Model(&models.Video{}).
		Where("tournament_id = ? AND date = ?", video.TournamentID, video.Date).
		Count(&siblings).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to resolve video address"})
	}

	target := fmt.Sprintf("/video/%s/%s/", video.Tournament.Slug, video.Date)
	if video.Order != 1 || siblings > 1 {
		target += fmt.Sprintf("%d/", video.Order)
	}
	if qs := c.Request().URI().QueryString(); len(qs) > 0 {
		target += "?" + string(qs)
	}
	return c.Redirect(target, 302)
}

// GetVideo serves a video detail addressed by tournament slug, date and
// an optional ordinal (default 1).
func (s *VideoService) GetVideo(c *fiber.Ctx) error {
	var tournament models.Tournament
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&tournament).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load video"})
	}

	date, err := models.ParseDate(c.Params("date"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	}

	order := 1
	if raw := c.Params("order"); raw != "" {
		if order, err = strconv.Atoi(raw); err != nil || order < 1 {
			return c.Status(404).JSON(fiber.Map{"error": "video not found"})
		}
	}

	var video models.Video
	err = s.DB.Where("tournament_id = ? AND date = ? AND sort_order = ? AND is_visible = ?",
		tournament.ID, date, order, true).
		Preload("Matchups", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Matchups.Home").
		Preload("Matchups.Away").
		Preload("Bookmarks", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Chat").
		First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load video"})
	}
	video.Tournament = &tournament

	// Part numbers count visible same-day siblings only.
	var siblings []models.Video
	err = s.DB.Select("id", "date", "sort_order").
		Where("tournament_id = ? AND date = ? AND is_visible = ?", tournament.ID, date, true).
		Order("date, sort_order").
		Find(&siblings).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load video"})
	}
	AnnotateParts(siblings)
	for i := range siblings {
		if siblings[i].ID == video.ID {
			video.Part = siblings[i].Part
			video.PartCount = siblings[i].PartCount
		}
	}

	presentVideo(&video, s.Cfg)
	return c.JSON(video)
}

type matchupInput struct {
	Home  string `json:"home"`
	Away  string `json:"away"`
	Order int    `json:"order"`
}

type bookmarkInput struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type videoRequest struct {
	Tournament string  `json:"tournament"`
	Type       string  `json:"type"`
	Date       string  `json:"date"`
	Order      *int    `json:"order"`
	Filename   *string `json:"filename"`
	URL        *string `json:"url"`
	IntroURL   *string `json:"intro_url"`
	IsVisible  *bool   `json:"is_visible"`
	Chat       *string `json:"chat"`
	ChatStart  *int64  `json:"chat_start"`

	// Transient sync helpers; never persisted, only used to derive
	// chat_start for this one submission.
	SyncHelpChatTimestamp  string `json:"sync_help_chat_timestamp"`
	SyncHelpVideoTimestamp string `json:"sync_help_video_timestamp"`

	Matchups  *[]matchupInput  `json:"matchups"`
	Bookmarks *[]bookmarkInput `json:"bookmarks"`
}

func (s *VideoService) applyRequest(video *models.Video, req *videoRequest) (int, error) {
	if req.Tournament != "" {
		var tournament models.Tournament
		if err := s.DB.Where("slug = ?", req.Tournament).First(&tournament).Error; err != nil {
			return 400, errors.New("tournament not found")
		}
		video.TournamentID = tournament.ID
	}
	if video.TournamentID == 0 {
		return 400, errors.New("tournament is required")
	}

	switch models.VideoType(req.Type) {
	case "":
	case models.VideoTypeNormal, models.VideoTypeSingle:
		video.Type = models.VideoType(req.Type)
	default:
		return 400, fmt.Errorf("unknown video type %q", req.Type)
	}

	if req.Date != "" {
		date, err := models.ParseDate(req.Date)
		if err != nil {
			return 400, err
		}
		video.Date = date
	}
	if video.Date.IsZero() {
		return 400, errors.New("date is required")
	}

	if req.Order != nil {
		if *req.Order < 1 {
			return 400, errors.New("order must be a positive integer")
		}
		video.Order = *req.Order
	}
	if video.Order == 0 {
		video.Order = 1
	}

	if req.Filename != nil {
		video.Filename = *req.Filename
	}
	if req.URL != nil {
		video.URL = *req.URL
	}
	if req.IntroURL != nil {
		video.IntroURL = *req.IntroURL
	}
	if req.IsVisible != nil {
		video.IsVisible = *req.IsVisible
	}

	if req.Chat != nil {
		if *req.Chat == "" {
			video.ChatID = nil
		} else {
			chatID, err := uuid.Parse(*req.Chat)
			if err != nil {
				return 400, errors.New("invalid chat id")
			}
			var chat models.Chat
			if err := s.DB.First(&chat, "id = ?", chatID).Error; err != nil {
				return 400, errors.New("chat not found")
			}
			video.ChatID = &chatID
		}
	}

	// Derive chat_start from the sync helpers unless set explicitly.
	var chatTimestamp *int64
	if req.SyncHelpChatTimestamp != "" {
		value, err := utils.ParseLocalizedInt(req.SyncHelpChatTimestamp)
		if err != nil {
			return 400, err
		}
		chatTimestamp = &value
	}
	var videoTimestamp *time.Duration
	if req.SyncHelpVideoTimestamp != "" {
		value, err := utils.ParseTimestamp(req.SyncHelpVideoTimestamp)
		if err != nil {
			return 400, err
		}
		videoTimestamp = &value
	}
	if derived := DeriveChatStart(req.ChatStart, chatTimestamp, videoTimestamp); derived != nil {
		video.ChatStart = derived
	}

	return 0, nil
}

func (s *VideoService) buildMatchups(videoID uint, inputs []matchupInput) ([]models.Matchup, int, error) {
	matchups := make([]models.Matchup, 0, len(inputs))
	for i, input := range inputs {
		var home, away models.Team
		if err := s.DB.Where("slug = ?", input.Home).First(&home).Error; err != nil {
			return nil, 400, fmt.Errorf("home team %q not found", input.Home)
		}
		if err := s.DB.Where("slug = ?", input.Away).First(&away).Error; err != nil {
			return nil, 400, fmt.Errorf("away team %q not found", input.Away)
		}
		order := input.Order
		if order == 0 {
			order = i + 1
		}
		matchups = append(matchups, models.Matchup{
			VideoID: videoID,
			HomeID:  home.ID,
			AwayID:  away.ID,
			Order:   order,
		})
	}
	return matchups, 0, nil
}

func (s *VideoService) buildBookmarks(videoID uint, inputs []bookmarkInput) ([]models.VideoBookmark, int, error) {
	bookmarks := make([]models.VideoBookmark, 0, len(inputs))
	for _, input := range inputs {
		if input.Name == "" {
			return nil, 400, errors.New("bookmark name is required")
		}
		position, err := utils.ParseTimestamp(input.Position)
		if err != nil {
			return nil, 400, err
		}
		bookmarks = append(bookmarks, models.VideoBookmark{
			VideoID:  videoID,
			Name:     input.Name,
			Position: position.Milliseconds(),
		})
	}
	return bookmarks, 0, nil
}

// CreateVideo creates a video together with its matchups and bookmarks.
func (s *VideoService) CreateVideo(c *fiber.Ctx) error {
	var req videoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	video := models.Video{Type: models.VideoTypeNormal, IsVisible: true}
	if status, err := s.applyRequest(&video, &req); err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var matchups []models.Matchup
	var bookmarks []models.VideoBookmark
	if req.Matchups != nil {
		var status int
		var err error
		if matchups, status, err = s.buildMatchups(0, *req.Matchups); err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if req.Bookmarks != nil {
		var status int
		var err error
		if bookmarks, status, err = s.buildBookmarks(0, *req.Bookmarks); err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&video).Error; err != nil {
			return err
		}
		for i := range matchups {
			matchups[i].VideoID = video.ID
		}
		for i := range bookmarks {
			bookmarks[i].VideoID = video.ID
		}
		if len(matchups) > 0 {
			if err := tx.Create(&matchups).Error; err != nil {
				return err
			}
		}
		if len(bookmarks) > 0 {
			if err := tx.Create(&bookmarks).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "a video already exists for that tournament, date and order"})
		}
		logrus.WithError(err).Error("video create failed")
		return c.Status(500).JSON(fiber.Map{"error": "failed to create video"})
	}

	video.Matchups = matchups
	video.Bookmarks = bookmarks
	return c.Status(201).JSON(video)
}

// UpdateVideo applies an edit submission. Submitted matchup and
// bookmark lists replace the stored ones wholesale.
func (s *VideoService) UpdateVideo(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	}

	var video models.Video
	err = s.DB.First(&video, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load video"})
	}

	var req videoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if status, err := s.applyRequest(&video, &req); err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var matchups []models.Matchup
	var bookmarks []models.VideoBookmark
	if req.Matchups != nil {
		var status int
		if matchups, status, err = s.buildMatchups(video.ID, *req.Matchups); err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if req.Bookmarks != nil {
		var status int
		if bookmarks, status, err = s.buildBookmarks(video.ID, *req.Bookmarks); err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&video).Error; err != nil {
			return err
		}
		if req.Matchups != nil {
			if err := tx.Where("video_id = ?", video.ID).Delete(&models.Matchup{}).Error; err != nil {
				return err
			}
			if len(matchups) > 0 {
				if err := tx.Create(&matchups).Error; err != nil {
					return err
				}
			}
		}
		if req.Bookmarks != nil {
			if err := tx.Where("video_id = ?", video.ID).Delete(&models.VideoBookmark{}).Error; err != nil {
				return err
			}
			if len(bookmarks) > 0 {
				if err := tx.Create(&bookmarks).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "a video already exists for that tournament, date and order"})
		}
		logrus.WithError(err).Error("video update failed")
		return c.Status(500).JSON(fiber.Map{"error": "failed to update video"})
	}
	return c.JSON(video)
}

// DeleteVideo removes a video and its matchups and bookmarks.
func (s *VideoService) DeleteVideo(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	}

	var video models.Video
	err = s.DB.First(&video, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "video not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load video"})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.Matchup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.VideoBookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&video).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete video"})
	}
	return c.SendStatus(204)
}
