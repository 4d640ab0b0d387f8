package services

import (
	"errors"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
	"github.com/Hamuko/daiseihai/utils"
)

type TournamentService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTournamentService(db *gorm.DB, cfg *config.Config) *TournamentService {
	return &TournamentService{DB: db, Cfg: cfg}
}

// ListTournaments returns tournaments that have at least one visible
// video, newest first. The count shown is of visible videos only.
func (s *TournamentService) ListTournaments(c *fiber.Ctx) error {
	var tournaments []models.Tournament
	if err := s.DB.Order("start_date DESC").Find(&tournaments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to list tournaments"})
	}

	visible := make([]models.Tournament, 0, len(tournaments))
	for i := range tournaments {
		var count int64
		err := s.DB.Model(&models.Video{}).
			Where("tournament_id = ? AND is_visible = ?", tournaments[i].ID, true).
			Count(&count).Error
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to count videos"})
		}
		if count == 0 {
			continue
		}
		tournaments[i].VideoCount = count
		tournaments[i].VideoCountLabel = utils.VideoCountLabel(count)
		visible = append(visible, tournaments[i])
	}
	return c.JSON(visible)
}

// GetTournament returns one tournament with its visible videos in
// (date, order) ascending, annotated with per-day part numbers and
// carrying matchups with team details.
func (s *TournamentService) GetTournament(c *fiber.Ctx) error {
	var tournament models.Tournament
	err := s.DB.Preload("League").Where("slug = ?", c.Params("slug")).First(&tournament).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load tournament"})
	}
	if tournament.League != nil && s.Cfg.LeagueMetadataURL != "" {
		tournament.League.MetadataDocumentURL = tournament.League.MetadataURL(s.Cfg.LeagueMetadataURL)
	}

	var videos []models.Video
	err = s.DB.Where("tournament_id = ? AND is_visible = ?", tournament.ID, true).
		Order("date, sort_order").
		Preload("Matchups", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Matchups.Home").
		Preload("Matchups.Away").
		Preload("Chat").
		Find(&videos).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load videos"})
	}

	AnnotateParts(videos)
	presentVideos(videos, s.Cfg)

	return c.JSON(fiber.Map{
		"tournament": tournament,
		"videos":     videos,
	})
}

type tournamentForm struct {
	name      string
	slugValue string
	startDate models.Date
	endDate   models.Date
}

func (s *TournamentService) parseForm(c *fiber.Ctx, requireAll bool) (*tournamentForm, error) {
	form := &tournamentForm{
		name:      c.FormValue("name"),
		slugValue: c.FormValue("slug"),
	}
	if form.slugValue == "" && form.name != "" {
		form.slugValue = slug.Make(form.name)
	}
	if requireAll && (form.name == "" || form.slugValue == "") {
		return nil, errors.New("name is required")
	}
	if form.slugValue != "" && !slug.IsSlug(form.slugValue) {
		return nil, errors.New("slug must be URL-safe")
	}
	var err error
	if v := c.FormValue("start_date"); v != "" {
		if form.startDate, err = models.ParseDate(v); err != nil {
			return nil, err
		}
	} else if requireAll {
		return nil, errors.New("start_date is required")
	}
	if v := c.FormValue("end_date"); v != "" {
		if form.endDate, err = models.ParseDate(v); err != nil {
			return nil, err
		}
	} else if requireAll {
		return nil, errors.New("end_date is required")
	}
	return form, nil
}

// CreateTournament creates a tournament from a multipart form. The logo
// is stored in the blob store as logos/{slug}{ext}; an upload with a
// colliding key overwrites the previous logo.
func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	form, err := s.parseForm(c, true)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	tournament := models.Tournament{
		Name:      form.name,
		Slug:      form.slugValue,
		StartDate: form.startDate,
		EndDate:   form.endDate,
	}

	if leagueSlug := c.FormValue("league"); leagueSlug != "" {
		var league models.League
		if err := s.DB.Where("slug = ?", leagueSlug).First(&league).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "league not found"})
		}
		tournament.LeagueID = &league.ID
	}

	if logo, err := c.FormFile("logo"); err == nil && logo.Size > 0 {
		key := "logos/" + tournament.Slug + filepath.Ext(logo.Filename)
		url, err := utils.UploadFile(c.Context(), logo, key)
		if err != nil {
			logrus.WithError(err).Error("logo upload failed")
			return c.Status(500).JSON(fiber.Map{"error": "failed to store logo"})
		}
		tournament.LogoURL = url
	}

	if err := s.DB.Create(&tournament).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "slug already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to create tournament"})
	}
	logrus.WithField("slug", tournament.Slug).Info("tournament created")
	return c.Status(201).JSON(tournament)
}

// UpdateTournament applies the submitted form fields to an existing
// tournament. Omitted fields keep their stored values.
func (s *TournamentService) UpdateTournament(c *fiber.Ctx) error {
	var tournament models.Tournament
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&tournament).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load tournament"})
	}

	form, err := s.parseForm(c, false)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if form.name != "" {
		tournament.Name = form.name
	}
	if v := c.FormValue("slug"); v != "" {
		tournament.Slug = v
	}
	if !form.startDate.IsZero() {
		tournament.StartDate = form.startDate
	}
	if !form.endDate.IsZero() {
		tournament.EndDate = form.endDate
	}
	if leagueSlug := c.FormValue("league"); leagueSlug != "" {
		var league models.League
		if err := s.DB.Where("slug = ?", leagueSlug).First(&league).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "league not found"})
		}
		tournament.LeagueID = &league.ID
	}
	if logo, err := c.FormFile("logo"); err == nil && logo.Size > 0 {
		key := "logos/" + tournament.Slug + filepath.Ext(logo.Filename)
		url, err := utils.UploadFile(c.Context(), logo, key)
		if err != nil {
			logrus.WithError(err).Error("logo upload failed")
			return c.Status(500).JSON(fiber.Map{"error": "failed to store logo"})
		}
		tournament.LogoURL = url
	}

	if err := s.DB.Save(&tournament).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "slug already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to update tournament"})
	}
	return c.JSON(tournament)
}

// DeleteTournament removes a tournament. Tournaments with videos are
// protected; the videos must go first.
func (s *TournamentService) DeleteTournament(c *fiber.Ctx) error {
	var tournament models.Tournament
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&tournament).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load tournament"})
	}

	var videoCount int64
	if err := s.DB.Model(&models.Video{}).Where("tournament_id = ?", tournament.ID).Count(&videoCount).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to check videos"})
	}
	if videoCount > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "tournament has videos and cannot be deleted"})
	}

	if err := s.DB.Delete(&tournament).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete tournament"})
	}
	return c.SendStatus(204)
}
