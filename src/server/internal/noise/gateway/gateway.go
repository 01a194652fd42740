package gateway

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voxsplit/voxsplit-be/src/server/internal/errors/api"
	errgateway "github.com/voxsplit/voxsplit-be/src/server/internal/errors/gateway"
	"github.com/voxsplit/voxsplit-be/src/server/internal/lib/request"
	"github.com/voxsplit/voxsplit-be/src/server/internal/noise/usecase"
)

const defaultStrength = 0.5

func NewGateway(usecase usecase.Usecase) Gateway {
	return Gateway{usecase: usecase}
}

type Gateway struct {
	usecase usecase.Usecase
}

func (g Gateway) RemoveNoise(c echo.Context) error {
	fileContents, err := request.FileBytes(c, "file")
	if err != nil {
		return errgateway.ErrorResponse(c, api.CommitError(err))
	}

	strength, err := request.FormFloat(c, "strength", defaultStrength)
	if err != nil {
		return errgateway.ErrorResponse(c, api.CommitError(err))
	}

	cleaned, apiErr := g.usecase.RemoveNoise(fileContents, c.FormValue("noise_type"), strength)
	if apiErr != nil {
		return errgateway.ErrorResponse(c, apiErr)
	}

	c.Response().Header().Set("X-Noise-Type", string(cleaned.NoiseType))
	c.Response().Header().Set("X-Reduction-DB", fmt.Sprintf("%.2f", cleaned.ReductionDB))

	return c.Blob(http.StatusOK, "audio/wav", cleaned.WAV)
}
