package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"osucard-backend/lib/apierr"
	"osucard-backend/lib/scrapers/osu"
)

func (s Service) withTimeout(handler http.HandlerFunc) http.HandlerFunc {
	if s.timeout <= 0 {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		handler(w, r.WithContext(ctx))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func statusOf(kind apierr.Kind) int {
	switch kind {
	case apierr.KindInvalidPlaymode:
		return http.StatusBadRequest
	case apierr.KindUpstream, apierr.KindTransport, apierr.KindScrapeStructure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s Service) writeJSON(ctx context.Context, w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		s.tel.ReportBroken(ctx, report_response_encode, err)
	}
}

func (s Service) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := apierr.KindOf(err)
	var apiErr *apierr.Error
	message := "Internal error"
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}
	s.writeJSON(ctx, w, statusOf(kind), errorBody{Error: message})
}

func (s Service) handleUser(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	profile, err := s.osu.GetUser(r.Context(), r.PathValue("username"), osu.UserOptions{
		Server:   query.Get("server"),
		Playmode: query.Get("mode"),
	})
	if err != nil {
		if apierr.KindOf(err) != apierr.KindInvalidPlaymode {
			s.tel.ReportWarning(r.Context(), report_user_get, r.PathValue("username"), err)
		}
		s.writeError(r.Context(), w, err)
		return
	}
	s.writeJSON(r.Context(), w, http.StatusOK, profile)
}

func (s Service) handleSkills(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	report, err := s.skills.GetUserSkills(r.Context(), username)
	if apierr.KindOf(err) == apierr.KindScrapeStructure {
		// the page loaded but could not be read, there is no report to show
		s.tel.ReportWarning(r.Context(), report_skills_get, username, err, errors.Unwrap(err))
		s.writeJSON(r.Context(), w, http.StatusBadGateway, nil)
		return
	}
	if err != nil {
		s.tel.ReportWarning(r.Context(), report_skills_get, username, err)
		s.writeError(r.Context(), w, err)
		return
	}

	if s.store != nil {
		err = s.store.Push(r.Context(), username, s.now(), report)
		if err != nil {
			s.tel.ReportBroken(r.Context(), report_store_push, username, err)
		}
	}

	s.writeJSON(r.Context(), w, http.StatusOK, report)
}

type historyEntry struct {
	Time   int64 `json:"time"`
	Report any   `json:"report"`
}

func (s Service) handleSkillsHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(r.Context(), w, http.StatusNotFound, errorBody{Error: "Skill history is not enabled"})
		return
	}

	snapshots, err := s.store.Pull(r.Context(), r.PathValue("username"))
	if err != nil {
		s.tel.ReportBroken(r.Context(), report_skills_history, err)
		s.writeJSON(r.Context(), w, http.StatusInternalServerError, errorBody{Error: "Failed to read skill history"})
		return
	}

	s.tel.ReportCount(r.Context(), report_skills_history, int64(len(snapshots)))

	entries := make([]historyEntry, len(snapshots))
	for i, snapshot := range snapshots {
		entries[i] = historyEntry{
			Time:   snapshot.Time.Unix(),
			Report: snapshot.Report,
		}
	}
	s.writeJSON(r.Context(), w, http.StatusOK, entries)
}

func (s Service) handleImage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	url := query.Get("url")
	if url == "" {
		s.writeJSON(r.Context(), w, http.StatusBadRequest, errorBody{Error: "Missing url"})
		return
	}

	if query.Get("encoding") == "base64" {
		encoded, err := s.osu.GetImageBase64(r.Context(), url)
		if err != nil {
			s.tel.ReportWarning(r.Context(), report_image_get, url, err)
			s.writeError(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(encoded))
		return
	}

	image, err := s.osu.GetImage(r.Context(), url)
	if err != nil {
		s.tel.ReportWarning(r.Context(), report_image_get, url, err)
		s.writeError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(image)
}
