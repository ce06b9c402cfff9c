package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bhavpulse/internal/domain/dto"
	"github.com/guttosm/bhavpulse/internal/ingestion"
	"github.com/guttosm/bhavpulse/internal/logger"
	"github.com/guttosm/bhavpulse/internal/middleware"
	"github.com/guttosm/bhavpulse/internal/service"
)

const (
	downloadRoute    = "/api/merged-output"
	downloadFilename = "merged_output.csv"
	uploadField      = "files"
)

// RunMerge godoc
// @Summary      Merge archives
// @Description  Rebuilds the combined table from every archive in the source directory
// @Tags         merge
// @Produce      json
// @Success      200  {object}  dto.MergeResponse
// @Failure      422  {object}  dto.ErrorResponse  "No valid CSV files found"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/merge [post]
func (h *Handler) RunMerge(c *gin.Context) {
	res, err := h.merger.Merge(c.Request.Context())
	if errors.Is(err, ingestion.ErrNoData) {
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, "No valid CSV files found for processing.", err)
		return
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "merge failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.MergeResponse{
		Message:  "Merged CSV saved at: " + res.Path,
		Archives: res.Archives,
		Files:    res.Files,
		Rows:     res.Rows,
		Path:     res.Path,
		Download: downloadRoute,
	})
}

// UploadArchives godoc
// @Summary      Upload archives
// @Description  Stores the uploaded .zip files in the source directory; run a merge afterwards
// @Tags         merge
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "One or more archives"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/archives [post]
func (h *Handler) UploadArchives(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "multipart form expected", err)
		return
	}
	files := form.File[uploadField]
	if len(files) == 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, fmt.Sprintf("no %q parts in upload", uploadField), nil)
		return
	}

	saved := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "unreadable upload "+fh.Filename, err)
			return
		}
		dst, err := h.merger.StoreArchive(fh.Filename, f)
		_ = f.Close()
		if errors.Is(err, service.ErrInvalidArchive) {
			middleware.AbortWithError(c, http.StatusBadRequest, "only archive uploads are accepted", err)
			return
		}
		if err != nil {
			middleware.AbortWithError(c, http.StatusInternalServerError, "failed to store "+fh.Filename, err)
			return
		}
		saved = append(saved, filepath.Base(dst))
	}
	logger.With("api").Info().Strs("archives", saved).Msg("archives uploaded")
	c.JSON(http.StatusCreated, dto.UploadResponse{Saved: saved})
}

// DownloadMerged godoc
// @Summary      Download combined table
// @Description  Returns the merged CSV as an attachment
// @Tags         merge
// @Produce      text/csv
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse  "Merged output file not found"
// @Router       /api/merged-output [get]
func (h *Handler) DownloadMerged(c *gin.Context) {
	path := h.merger.OutputPath()
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		middleware.AbortWithError(c, http.StatusNotFound, "Merged output file not found", err)
		return
	}
	c.Header("Content-Type", "text/csv")
	c.FileAttachment(path, downloadFilename)
}
