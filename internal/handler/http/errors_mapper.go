package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
	"github.com/MKhiriev/deep-video-discovery/internal/store"
	"github.com/MKhiriev/deep-video-discovery/internal/utils"
	"github.com/MKhiriev/deep-video-discovery/internal/video"
)

var errorStatusMap = map[error]int{
	ErrMissingCredentials:               http.StatusUnauthorized,
	ErrInvalidJSON:                      http.StatusBadRequest,
	ErrInvalidQuery:                     http.StatusBadRequest,
	ErrUnknownFormat:                    http.StatusBadRequest,
	utils.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidFrameName:        http.StatusBadRequest,
	service.ErrNotYouTubeVideo:         http.StatusBadRequest,
	service.ErrWrongAPIKey:             http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNoSubtitles:             http.StatusNotFound,
	service.ErrNoFrames:                http.StatusNotFound,
	service.ErrFrameNotFound:           http.StatusNotFound,
	service.ErrInvalidVideoState:       http.StatusConflict,
	service.ErrVideoBusy:               http.StatusConflict,
	service.ErrQueueFull:               http.StatusServiceUnavailable,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	video.ErrNotYouTubeURL: http.StatusBadRequest,
	video.ErrNoVideoID:     http.StatusBadRequest,

	store.ErrVideoNotFound:      http.StatusNotFound,
	store.ErrVideoAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err. Server-side failures
// are reported to the caller by their status text only.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="dvd"`)
	}
	http.Error(w, err.Error(), status)
}
