package server

import (
	"encoding/json"
	"html"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/lead-scraper/internal/store"
	"github.com/jonathan/lead-scraper/internal/types"
)

const maxBodyBytes = 1 << 20

// handleSaveURLs merges submitted profile URLs into a named URL collection.
func (s *Server) handleSaveURLs(w http.ResponseWriter, r *http.Request) {
	var req types.SaveURLsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.URLs == nil {
		err := &ErrValidation{Field: "urls", Message: "No URLs provided"}
		s.errorResponse(w, HTTPStatus(err), validationMessage(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	urls := make([]string, 0, len(req.URLs))
	for _, u := range req.URLs {
		urls = append(urls, strings.TrimSpace(u))
	}

	path := s.urlCollectionPath(req.Filename)
	coll := store.URLCollection(path).WithLockTimeout(s.cfg.LockTimeout)
	result, err := store.MergeURLs(r.Context(), coll, urls)
	if err != nil {
		log.Printf("[SERVER] failed to save URLs to %s: %v", path, err)
		s.errorResponse(w, HTTPStatus(err), "Failed to save URLs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SaveResponse{
		Status: "success",
		File:   filepath.Base(path),
		Added:  result.Added,
		Total:  result.Total,
	})
}

// handleSaveExperience stores one profile's experience list, replacing any
// previous submission for the same profile.
func (s *Server) handleSaveExperience(w http.ResponseWriter, r *http.Request) {
	var req types.SaveExperienceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.ProfileURL = strings.TrimSpace(req.ProfileURL)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	record := s.sanitizeRecord(req.Record())
	path := filepath.Join(s.cfg.DataDir, s.cfg.ExperienceFile)
	coll := store.ExperienceCollection(path).WithLockTimeout(s.cfg.LockTimeout)
	result, err := coll.Merge(r.Context(), []types.ProfileExperienceRecord{record})
	if err != nil {
		log.Printf("[SERVER] failed to save experience to %s: %v", path, err)
		s.errorResponse(w, HTTPStatus(err), "Failed to save experience details: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SaveResponse{
		Status: "success",
		File:   filepath.Base(path),
		Added:  result.Added,
		Total:  result.Total,
	})
}

// urlCollectionPath maps a client-supplied filename to a file inside the
// data directory. Only the base name is used.
func (s *Server) urlCollectionPath(filename string) string {
	name := strings.TrimSpace(filename)
	name = strings.TrimSuffix(filepath.Base(filepath.Clean("/"+name)), ".json")
	if name == "" || name == "/" || name == "." {
		name = s.cfg.URLFile
	}
	return filepath.Join(s.cfg.DataDir, name+".json")
}

// sanitizeRecord strips markup from submitted text fields.
func (s *Server) sanitizeRecord(record types.ProfileExperienceRecord) types.ProfileExperienceRecord {
	record.ProfileName = s.plainText(record.ProfileName)
	for i, exp := range record.Experiences {
		record.Experiences[i] = types.ExperienceEntry{
			Company:  s.plainText(exp.Company),
			JobTitle: s.plainText(exp.JobTitle),
			Duration: s.plainText(exp.Duration),
		}
	}
	return record
}

func (s *Server) plainText(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}
