package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
)

type LeagueService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLeagueService(db *gorm.DB, cfg *config.Config) *LeagueService {
	return &LeagueService{DB: db, Cfg: cfg}
}

func (s *LeagueService) present(league *models.League) {
	if s.Cfg.LeagueMetadataURL != "" {
		league.MetadataDocumentURL = league.MetadataURL(s.Cfg.LeagueMetadataURL)
	}
}

func (s *LeagueService) ListLeagues(c *fiber.Ctx) error {
	var leagues []models.League
	if err := s.DB.Order("slug").Find(&leagues).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to list leagues"})
	}
	for i := range leagues {
		s.present(&leagues[i])
	}
	return c.JSON(leagues)
}

type leagueRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *LeagueService) CreateLeague(c *fiber.Ctx) error {
	var req leagueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}
	if !slug.IsSlug(req.Slug) {
		return c.Status(400).JSON(fiber.Map{"error": "slug must be URL-safe"})
	}

	league := models.League{Name: req.Name, Slug: req.Slug}
	if err := s.DB.Create(&league).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "slug already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to create league"})
	}
	s.present(&league)
	return c.Status(201).JSON(league)
}

func (s *LeagueService) UpdateLeague(c *fiber.Ctx) error {
	var league models.League
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&league).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "league not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load league"})
	}

	var req leagueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name != "" {
		league.Name = req.Name
	}
	if req.Slug != "" {
		if !slug.IsSlug(req.Slug) {
			return c.Status(400).JSON(fiber.Map{"error": "slug must be URL-safe"})
		}
		league.Slug = req.Slug
	}

	if err := s.DB.Save(&league).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "slug already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to update league"})
	}
	s.present(&league)
	return c.JSON(league)
}

// DeleteLeague removes a league unless a tournament still references it.
func (s *LeagueService) DeleteLeague(c *fiber.Ctx) error {
	var league models.League
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&league).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "league not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load league"})
	}

	var count int64
	if err := s.DB.Model(&models.Tournament{}).Where("league_id = ?", league.ID).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to check tournaments"})
	}
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "league has tournaments and cannot be deleted"})
	}

	if err := s.DB.Delete(&league).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete league"})
	}
	return c.SendStatus(204)
}
