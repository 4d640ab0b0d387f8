package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
	"github.com/Hamuko/daiseihai/utils"
)

type ChatService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChatService(db *gorm.DB, cfg *config.Config) *ChatService {
	return &ChatService{DB: db, Cfg: cfg}
}

func (s *ChatService) ListChats(c *fiber.Ctx) error {
	var chats []models.Chat
	if err := s.DB.Order("date DESC").Find(&chats).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to list chats"})
	}
	for i := range chats {
		chats[i].FileURL = chats[i].URL(s.Cfg.CDNBaseURL)
	}
	return c.JSON(chats)
}

// CreateChat uploads a chat log file and registers it under a fresh
// identifier. The blob lives at chats/{id}.txt.
func (s *ChatService) CreateChat(c *fiber.Ctx) error {
	date, err := models.ParseDate(c.FormValue("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "chat log file is required"})
	}

	chat := models.Chat{ID: uuid.New(), Date: date}
	url, err := utils.UploadFile(c.Context(), file, chat.Key())
	if err != nil {
		logrus.WithError(err).Error("chat upload failed")
		return c.Status(500).JSON(fiber.Map{"error": "failed to store chat log"})
	}

	if err := s.DB.Create(&chat).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to create chat"})
	}
	chat.FileURL = url
	return c.Status(201).JSON(chat)
}

// DeleteChat removes a chat log unless a video still references it.
func (s *ChatService) DeleteChat(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "chat not found"})
	}

	var chat models.Chat
	err = s.DB.First(&chat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "chat not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load chat"})
	}

	var count int64
	if err := s.DB.Model(&models.Video{}).Where("chat_id = ?", chat.ID).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to check videos"})
	}
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "chat is referenced by a video and cannot be deleted"})
	}

	if err := utils.DeleteObject(c.Context(), chat.Key()); err != nil {
		logrus.WithError(err).Warn("failed to delete chat log blob")
	}
	if err := s.DB.Delete(&chat).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete chat"})
	}
	return c.SendStatus(204)
}
