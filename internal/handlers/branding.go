package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/middleware"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

type BrandingHandler struct {
	Store   *store.Store
	LogoDir string
}

func NewBrandingHandler(st *store.Store, logoDir string) *BrandingHandler {
	return &BrandingHandler{Store: st, LogoDir: logoDir}
}

// Get: GET /branding
func (h *BrandingHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Store.Branding())
}

// Update: PUT /branding. Shallow merge of only the provided fields.
func (h *BrandingHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var req struct {
		BrandName   *string `json:"brandName"`
		CompanyInfo *string `json:"companyInfo"`
		Logo        *string `json:"logo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", i18n.T(lang, "invalid_json"), nil)
		return
	}
	updated, err := h.Store.UpdateBranding(store.BrandingPatch{
		BrandName:   req.BrandName,
		CompanyInfo: req.CompanyInfo,
		Logo:        req.Logo,
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_branding", "", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// UploadLogo: POST /branding/logo. Multipart upload stored under the data
// dir; the stored branding then points at the local file.
func (h *BrandingHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("logo")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_logo_file", "", nil)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		httpx.JSONError(w, http.StatusBadRequest, "unsupported_image_type", "", nil)
		return
	}
	if err := os.MkdirAll(h.LogoDir, 0o755); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_store_logo", "", nil)
		return
	}
	path := filepath.Join(h.LogoDir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_store_logo", "", nil)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_store_logo", "", nil)
		return
	}

	updated, err := h.Store.UpdateBranding(store.BrandingPatch{Logo: &path})
	if err != nil {
		log.WithError(err).Error("logo path update failed")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_branding", "", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// SetLanguage: PUT /language
func (h *BrandingHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", i18n.T(lang, "invalid_json"), nil)
		return
	}
	if err := h.Store.SetLanguage(req.Language); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_language", i18n.T(lang, "unknown_language"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.Store.Branding())
}
