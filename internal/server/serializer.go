package server

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

const maxBodySize = 1 << 20

// sonicSerializer is echo's JSON codec on top of sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := sonic.ConfigStd.NewDecoder(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	return nil
}

// bindBody decodes the JSON request body only. Path and query parameters
// are read explicitly by each handler.
func bindBody(c echo.Context, i interface{}) error {
	return (&echo.DefaultBinder{}).BindBody(c, i)
}
