package controllers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mateohidalgo/landrecords-backend/api/middleware"
	"github.com/mateohidalgo/landrecords-backend/api/responses"
	"github.com/mateohidalgo/landrecords-backend/api/validators"
	"github.com/mateohidalgo/landrecords-backend/internal/records"
	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
	"github.com/mateohidalgo/landrecords-backend/pkg/logger"
)

// multipartMemoryLimit caps the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const multipartMemoryLimit = 4 << 20

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid caller identity")
	}
	return id, nil
}

func recordIDParam(r *http.Request) (uuid.UUID, error) {
	return validators.ParsePathUUID(chi.URLParam(r, "recordId"), "recordId")
}

func documentFromForm(r *http.Request) (*records.DocumentUpload, multipart.File, error) {
	file, header, err := r.FormFile("document")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid document upload")
	}
	return &records.DocumentUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, file, nil
}

func optionalFormValue(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	value := strings.TrimSpace(r.FormValue(key))
	return &value
}

// RecordsList handles the owner-scoped listing with search, category filter,
// and fixed-size pagination.
func RecordsList(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseQueryUUID(r, "category")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), records.ListParams{
			OwnerID:    userID,
			Search:     validators.ParseQueryString(r, "search"),
			CategoryID: categoryID,
			Page:       page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RecordsCreate accepts a multipart form with the record fields plus the document file.
func RecordsCreate(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request must be multipart/form-data"))
			return
		}

		doc, file, err := documentFromForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if doc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "document file is required"))
			return
		}
		defer file.Close()

		req := records.CreateRecordRequest{
			Title:           strings.TrimSpace(r.FormValue("title")),
			PropertyAddress: strings.TrimSpace(r.FormValue("property_address")),
			Description:     strings.TrimSpace(r.FormValue("description")),
			SurveyNumber:    strings.TrimSpace(r.FormValue("survey_number")),
			PropertySize:    strings.TrimSpace(r.FormValue("property_size")),
			PropertyType:    strings.TrimSpace(r.FormValue("property_type")),
		}
		if raw := strings.TrimSpace(r.FormValue("category_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "category_id must be a valid UUID"))
				return
			}
			req.CategoryID = &id
		}
		if err := validators.ValidateStruct(&req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), userID, req, *doc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// RecordsDetail returns a single record to its owner.
func RecordsDetail(svc records.Service, logg *logger.Logger) http.HandlerFunc {
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

		record, err := svc.Get(r.Context(), userID, recordID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// RecordsUpdate patches record fields; multipart requests may also carry a
// replacement document.
func RecordsUpdate(svc records.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req records.UpdateRecordRequest
		var doc *records.DocumentUpload

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
				return
			}

			var file multipart.File
			doc, file, err = documentFromForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if file != nil {
				defer file.Close()
			}

			req.Title = optionalFormValue(r, "title")
			req.PropertyAddress = optionalFormValue(r, "property_address")
			req.Description = optionalFormValue(r, "description")
			req.SurveyNumber = optionalFormValue(r, "survey_number")
			req.PropertySize = optionalFormValue(r, "property_size")
			req.PropertyType = optionalFormValue(r, "property_type")
			if raw := optionalFormValue(r, "category_id"); raw != nil {
				if *raw == "" {
					req.ClearCategory = true
				} else {
					id, err := uuid.Parse(*raw)
					if err != nil {
						responses.WriteError(r.Context(), logg, w,
							pkgerrors.New(pkgerrors.CodeValidation, "category_id must be a valid UUID"))
						return
					}
					req.CategoryID = &id
				}
			}
			if err := validators.ValidateStruct(&req); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), userID, recordID, req, doc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// RecordsDelete removes a record and its stored document.
func RecordsDelete(svc records.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, recordID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// Dashboard summarizes the caller's records and the category catalog.
func Dashboard(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dash, err := svc.Dashboard(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dash)
	}
}
