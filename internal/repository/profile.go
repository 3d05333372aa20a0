package repository

import (
	"context"
	"errors"

	"dyslexibrowse/internal/database"
	"dyslexibrowse/internal/models"

	"gorm.io/gorm"
)

// ErrNoProfile is returned when no assessment has been completed yet.
var ErrNoProfile = errors.New("no stored profile")

// SaveProfile stores the profile in the single slot, overwriting any
// previous one. Profiles are never versioned or merged: a re-assessment
// simply replaces the artifact.
func SaveProfile(ctx context.Context, profile *models.DyslexiaProfile) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DyslexiaProfile{}).Error; err != nil {
			return err
		}
		profile.ID = 0
		return tx.Create(profile).Error
	})
}

// LoadProfile returns the stored profile, or ErrNoProfile if none exists.
func LoadProfile(ctx context.Context) (*models.DyslexiaProfile, error) {
	var profile models.DyslexiaProfile
	err := database.DB.WithContext(ctx).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile clears the profile slot.
func DeleteProfile(ctx context.Context) error {
	return database.DB.WithContext(ctx).Where("1 = 1").Delete(&models.DyslexiaProfile{}).Error
}
