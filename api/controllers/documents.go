package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mateohidalgo/landrecords-backend/api/responses"
	"github.com/mateohidalgo/landrecords-backend/internal/documents"
	"github.com/mateohidalgo/landrecords-backend/pkg/logger"
)

// DocumentDownload streams the record's document with an attachment disposition.
func DocumentDownload(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return deliverDocument(svc, logg, documents.ModeAttachment)
}

// DocumentPreview streams the record's document inline. The global frame
// restriction is lifted here so the app's embedded viewer can render it.
func DocumentPreview(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return deliverDocument(svc, logg, documents.ModeInline)
}

func deliverDocument(svc documents.Service, logg *logger.Logger, mode documents.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recordID, err := recordIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivery, err := svc.Deliver(r.Context(), userID, recordID, mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer delivery.Content.Close()

		w.Header().Set("Content-Type", delivery.ContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`%s; filename="%s"`, delivery.Disposition, delivery.Filename))
		if delivery.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(delivery.Size, 10))
		}
		if mode == documents.ModeInline {
			w.Header().Del("X-Frame-Options")
		}

		if _, err := io.Copy(w, delivery.Content); err != nil && logg != nil {
			logg.Warn(r.Context(), "document stream interrupted")
		}
	}
}
