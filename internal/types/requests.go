// Package types provides type definitions for structured data used throughout the lead-scraper system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// SaveURLsRequest is the body of POST /save_urls.
type SaveURLsRequest struct {
	URLs     []string `json:"urls" validate:"required"`
	Filename string   `json:"filename,omitempty" validate:"omitempty,max=128"`
}

// SaveExperienceRequest is the body of POST /save_experience_details.
type SaveExperienceRequest struct {
	ProfileURL  string            `json:"profileUrl" validate:"required"`
	ProfileName string            `json:"profileName,omitempty" validate:"omitempty,max=256"`
	Experiences []ExperienceEntry `json:"experiences" validate:"required,dive"`
}

// SaveResponse is returned by both save endpoints.
type SaveResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
	Added  int    `json:"added"`
	Total  int    `json:"total"`
}

// Validate validates the SaveURLsRequest using the validator.
func (r *SaveURLsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveExperienceRequest using the validator.
func (r *SaveExperienceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Record converts the request into the stored experience record.
func (r *SaveExperienceRequest) Record() ProfileExperienceRecord {
	experiences := r.Experiences
	if experiences == nil {
		experiences = []ExperienceEntry{}
	}
	return ProfileExperienceRecord{
		ProfileURL:  r.ProfileURL,
		ProfileName: r.ProfileName,
		Experiences: experiences,
	}
}
