package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voxsplit/voxsplit-be/src/server/internal/errors/api"
	errgateway "github.com/voxsplit/voxsplit-be/src/server/internal/errors/gateway"
	"github.com/voxsplit/voxsplit-be/src/server/internal/lib/request"
	"github.com/voxsplit/voxsplit-be/src/server/internal/separation/usecase"
)

const defaultStrength = 0.5

func NewGateway(usecase usecase.Usecase) Gateway {
	return Gateway{usecase: usecase}
}

type Gateway struct {
	usecase usecase.Usecase
}

func (g Gateway) CreateJob(c echo.Context) error {
	ctx := c.Request().Context()

	fileContents, err := request.FileBytes(c, "file")
	if err != nil {
		return errgateway.ErrorResponse(c, api.CommitError(err))
	}

	strength, err := request.FormFloat(c, "strength", defaultStrength)
	if err != nil {
		return errgateway.ErrorResponse(c, api.CommitError(err))
	}

	job, apiErr := g.usecase.CreateJob(ctx,
		fileContents,
		c.FormValue("mode"),
		c.FormValue("quality"),
		strength)
	if apiErr != nil {
		return errgateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusAccepted, job)
}

func (g Gateway) GetJob(c echo.Context) error {
	ctx := c.Request().Context()

	job, apiErr := g.usecase.GetJob(ctx, c.Param("id"))
	if apiErr != nil {
		return errgateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, job)
}

func (g Gateway) QualityInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, g.usecase.QualityInfo())
}
