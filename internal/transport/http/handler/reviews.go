package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/daeseda/laundry-api/internal/application/review"
	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/pkg/validate"
	"github.com/daeseda/laundry-api/internal/transport/http/middleware"
)

// maxReviewUploadBytes bounds the multipart form held in memory per request.
const maxReviewUploadBytes = 10 << 20 // 10 MiB

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler { return &ReviewHandler{svc: svc} }

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	rev, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "reviewId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

// Image redirects to a short-lived presigned URL for the review's image.
func (h *ReviewHandler) Image(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.ImageURL(r.Context(), chi.URLParam(r, "reviewId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Register accepts either a JSON body or a multipart form with an optional
// "image" part. Multipart fields: order_id, content, rating, image.
func (h *ReviewHandler) Register(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		req   domain.CreateReviewRequest
		image *review.ImageInput
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxReviewUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		rating, _ := strconv.Atoi(r.FormValue("rating"))
		req = domain.CreateReviewRequest{
			OrderID: r.FormValue("order_id"),
			Content: r.FormValue("content"),
			Rating:  rating,
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			image = &review.ImageInput{
				Reader:      file,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rev, err := h.svc.Create(r.Context(), claims.UserID, req, image)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}
