package v1

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/YanPetrov7/blog-content-management-system/internal/controller/restapi/v1/validate"
	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// formUpload reads an optional image file out of the multipart form.
// A missing field is not an error. On a validation failure the returned
// code and message describe the rejection; code is 0 otherwise.
func formUpload(ctx *fiber.Ctx, field string) (*dto.Upload, int, string) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return nil, 0, ""
	}

	if file.Size == 0 {
		return nil, http.StatusBadRequest, "file is empty"
	}

	if file.Size > validate.MaxFileSize {
		return nil, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file size cant be more than %d bytes", validate.MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !validate.AllowedContentTypes[contentType] {
		return nil, http.StatusUnsupportedMediaType, "unsupported file type. Allowed: jpeg, png, gif"
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !validate.AllowedExtensions[ext] {
		return nil, http.StatusUnsupportedMediaType, "unsupported file extension. Allowed: .jpg, .jpeg, .png, .gif"
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, http.StatusInternalServerError, "problems with opening the file"
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, http.StatusInternalServerError, "problems with reading the file"
	}

	return &dto.Upload{Data: data, Mime: contentType}, 0, ""
}
