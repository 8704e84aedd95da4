package repository

import (
	"fmt"

	"github.com/axellelanca/surl/internal/models"
	"gorm.io/gorm"
)

// LinkRepository est une interface qui définit les méthodes d'accès à l'historique local
type LinkRepository interface {
	CreateLink(link *models.Link) error
	GetLinkByShortCode(shortCode string) (*models.Link, error)
	GetAllLinks() ([]models.Link, error)
	GetRecentLinks(limit int) ([]models.Link, error)
}

// GormLinkRepository est l'implémentation de LinkRepository utilisant GORM.
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository crée et retourne une nouvelle instance de GormLinkRepository.
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// CreateLink insère un nouveau lien dans l'historique.
func (r *GormLinkRepository) CreateLink(link *models.Link) error {
	if err := r.db.Create(link).Error; err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// GetLinkByShortCode récupère le dernier lien enregistré pour un shortCode.
// Retourne gorm.ErrRecordNotFound si le code est absent de l'historique.
func (r *GormLinkRepository) GetLinkByShortCode(shortCode string) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("short_code = ?", shortCode).Order("id desc").First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetAllLinks récupère tous les liens de l'historique.
func (r *GormLinkRepository) GetAllLinks() ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Order("id asc").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve all links: %w", err)
	}
	return links, nil
}

// GetRecentLinks récupère les liens les plus récents, du plus récent au plus ancien.
func (r *GormLinkRepository) GetRecentLinks(limit int) ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Order("id desc").Limit(limit).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recent links: %w", err)
	}
	return links, nil
}
