package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
	"github.com/MKhiriev/deep-video-discovery/internal/srt"
	"github.com/MKhiriev/deep-video-discovery/internal/utils"
	"github.com/MKhiriev/deep-video-discovery/models"
)

const (
	formatJSON = "json"
	formatSRT  = "srt"
)

func (h *Handler) loadVideo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.loadVideo", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	v, created, err := h.services.VideoService.Load(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.loadVideo", err)
		return
	}

	status := http.StatusAccepted
	if !created {
		status = http.StatusOK
	}

	log.Info().Str("video_id", v.ID).Bool("created", created).Msg("video load accepted")
	utils.WriteJSON(w, v, status)
}

func (h *Handler) listVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.ListFilter{Status: models.VideoStatus(query.Get("status"))}

	var err error
	if filter.Limit, err = parseUintParam(query.Get("limit")); err != nil {
		writeError(w, r, "*Handler.listVideos", fmt.Errorf("%w: limit: %w", ErrInvalidQuery, err))
		return
	}
	if filter.Offset, err = parseUintParam(query.Get("offset")); err != nil {
		writeError(w, r, "*Handler.listVideos", fmt.Errorf("%w: offset: %w", ErrInvalidQuery, err))
		return
	}

	videos, err := h.services.VideoService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, "*Handler.listVideos", err)
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}

	utils.WriteJSON(w, videos, http.StatusOK)
}

func (h *Handler) getVideo(w http.ResponseWriter, r *http.Request) {
	v, err := h.services.VideoService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getVideo", err)
		return
	}

	utils.WriteJSON(w, v, http.StatusOK)
}

func (h *Handler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.services.VideoService.Delete(r.Context(), id); err != nil {
		writeError(w, r, "*Handler.deleteVideo", err)
		return
	}

	logger.FromRequest(r).Info().Str("video_id", id).Msg("video deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeFrames(w http.ResponseWriter, r *http.Request) {
	v, err := h.services.VideoService.DecodeFrames(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.decodeFrames", err)
		return
	}

	utils.WriteJSON(w, v, http.StatusAccepted)
}

func (h *Handler) listFrames(w http.ResponseWriter, r *http.Request) {
	frames, err := h.services.VideoService.Frames(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.listFrames", err)
		return
	}
	if frames == nil {
		frames = []string{}
	}

	utils.WriteJSON(w, frames, http.StatusOK)
}

func (h *Handler) getFrame(w http.ResponseWriter, r *http.Request) {
	path, err := h.services.VideoService.FramePath(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, "*Handler.getFrame", err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %w", service.ErrFrameNotFound, err)
		}
		writeError(w, r, "*Handler.getFrame", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, "*Handler.getFrame", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
}

func (h *Handler) fetchSubtitle(w http.ResponseWriter, r *http.Request) {
	var req models.SubtitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, "*Handler.fetchSubtitle", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if lang := r.URL.Query().Get("language"); lang != "" && req.Language == "" {
		req.Language = lang
	}

	v, err := h.services.VideoService.FetchSubtitle(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, "*Handler.fetchSubtitle", err)
		return
	}

	utils.WriteJSON(w, v, http.StatusAccepted)
}

func (h *Handler) getSubtitles(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != formatJSON && format != formatSRT {
		writeError(w, r, "*Handler.getSubtitles", fmt.Errorf("%w: %q", ErrUnknownFormat, format))
		return
	}

	cues, err := h.services.VideoService.Subtitles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getSubtitles", err)
		return
	}

	if format != formatSRT {
		if cues == nil {
			cues = []models.Cue{}
		}
		utils.WriteJSON(w, cues, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/x-subrip; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err = srt.Format(w, cues); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSubtitles").Msg("error writing subtitles")
	}
}

func parseUintParam(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseUint(value, 10, 64)
}
