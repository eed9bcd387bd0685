package controllers

import (
	"mime/multipart"
	"net/http"

	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/validation"

	"github.com/labstack/echo/v4"
)

// openUpload opens the multipart "file" field and checks it against the rules
// of the upload context. The caller closes the returned file.
func openUpload(c echo.Context, uploadContext constants.UploadContext) (multipart.File, *multipart.FileHeader, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("File is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, apperrors.NewHttpError(http.StatusInternalServerError, "Failed to process the file", err, nil)
	}

	if err := validation.ValidateFile(fileHeader.Filename, fileHeader.Size, src, uploadContext.String()); err != nil {
		src.Close()
		return nil, nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			err.Error(),
			apperrors.ErrBadRequest,
			nil,
		).WithContext(map[string]interface{}{"filename": fileHeader.Filename, "context": uploadContext.String()})
	}
	return src, fileHeader, nil
}
