package request

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

// FileBytes reads the named multipart upload into memory.
func FileBytes(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, mark.Wrap(err, marks.InvalidParameter, "Missing file upload: "+field)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, mark.Wrap(err, marks.InvalidParameter, "Cannot open uploaded file: "+field)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, mark.Wrap(err, marks.InvalidParameter, "Cannot read uploaded file: "+field)
	}

	return contents, nil
}

// FormFloat parses an optional float form field, returning the
// fallback when the field is absent.
func FormFloat(c echo.Context, field string, fallback float64) (float64, error) {
	value := c.FormValue(field)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, mark.Wrap(err, marks.InvalidParameter, "Form field is not a number: "+field)
	}

	return parsed, nil
}
