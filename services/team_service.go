package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
)

type TeamService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTeamService(db *gorm.DB, cfg *config.Config) *TeamService {
	return &TeamService{DB: db, Cfg: cfg}
}

// ListTeams returns teams that participate in at least one matchup as
// home or away. Teams with zero participation never appear.
func (s *TeamService) ListTeams(c *fiber.Ctx) error {
	var teams []models.Team
	if err := s.DB.Order("slug").Find(&teams).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to list teams"})
	}

	listed := make([]models.Team, 0, len(teams))
	for i := range teams {
		var count int64
		err := s.DB.Model(&models.Matchup{}).
			Where("home_id = ? OR away_id = ?", teams[i].ID, teams[i].ID).
			Count(&count).Error
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to count matchups"})
		}
		if count == 0 {
			continue
		}
		teams[i].MatchupCount = count
		teams[i].CSSStyle = teams[i].Style()
		listed = append(listed, teams[i])
	}
	return c.JSON(listed)
}

// GetTeam returns one team with every visible video it appears in,
// newest first. A video where the team plays in several matchups is
// returned once.
func (s *TeamService) GetTeam(c *fiber.Ctx) error {
	var team models.Team
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "team not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load team"})
	}
	team.CSSStyle = team.Style()

	participation := s.DB.Model(&models.Matchup{}).
		Select("video_id").
		Where("home_id = ? OR away_id = ?", team.ID, team.ID)

	var videos []models.Video
	err = s.DB.Where("is_visible = ?", true).
		Where("id IN (?)", participation).
		Order("date DESC, sort_order DESC").
		Preload("Matchups", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Matchups.Home").
		Preload("Matchups.Away").
		Preload("Tournament").
		Preload("Chat").
		Find(&videos).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load videos"})
	}
	presentVideos(videos, s.Cfg)

	return c.JSON(fiber.Map{
		"team":   team,
		"videos": videos,
	})
}

type teamRequest struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	MainColor      *string `json:"main_color"`
	SecondaryColor *string `json:"secondary_color"`
	LongName       *bool   `json:"long_name"`
}

// CreateTeam creates a team. Color strings are validated before
// anything is persisted; a malformed color rejects the whole request.
func (s *TeamService) CreateTeam(c *fiber.Ctx) error {
	var req teamRequest
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

	team := models.Team{
		Name:           req.Name,
		Slug:           req.Slug,
		MainColor:      0x000000,
		SecondaryColor: 0xffffff,
	}
	if req.MainColor != nil {
		color, err := models.ParseColor(*req.MainColor)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		team.MainColor = color
	}
	if req.SecondaryColor != nil {
		color, err := models.ParseColor(*req.SecondaryColor)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		team.SecondaryColor = color
	}
	if req.LongName != nil {
		team.LongName = *req.LongName
	}

	if err := s.DB.Create(&team).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "slug already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to create team"})
	}
	team.CSSStyle = team.Style()
	return c.Status(201).JSON(team)
}

func (s *TeamService) UpdateTeam(c *fiber.Ctx) error {
	var team models.Team
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "team not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load team"})
	}

	var req teamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name != "" {
		team.Name = req.Name
	}
	if req.Slug != "" {
		if !slug.IsSlug(req.Slug) {
			return c.Status(400).JSON(fiber.Map{"error": "slug must be URL-safe"})
		}
		team.Slug = req.Slug
	}
	if req.MainColor != nil {
		color, err := models.ParseColor(*req.MainColor)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		team.MainColor = color
	}
	if req.SecondaryColor != nil {
		color, err := models.ParseColor(*req.SecondaryColor)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		team.SecondaryColor = color
	}
	if req.LongName != nil {
		team.LongName = *req.LongName
	}

	if err := s.DB.Save(&team).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "slug already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to update team"})
	}
	team.CSSStyle = team.Style()
	return c.JSON(team)
}

// DeleteTeam removes a team together with its matchups.
func (s *TeamService) DeleteTeam(c *fiber.Ctx) error {
	var team models.Team
	err := s.DB.Where("slug = ?", c.Params("slug")).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "team not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load team"})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("home_id = ? OR away_id = ?", team.ID, team.ID).
			Delete(&models.Matchup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete team"})
	}
	return c.SendStatus(204)
}
