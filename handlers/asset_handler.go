// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"numdash-server/commons"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// assetTypes are the files the dashboard loads from the asset directory,
// mostly country flags shown next to prices and catalog offers.
var assetTypes = map[string]bool{
	".png":  true,
	".svg":  true,
	".webp": true,
	".jpg":  true,
	".jpeg": true,
}

func assetsDir() string {
	return commons.GetEnv("ASSETS_DIR", "public")
}

// ServeAssetHandler serves one image from ASSETS_DIR. Paths escaping the
// directory and other file types are refused.
func ServeAssetHandler(c echo.Context) error {
	requested := filepath.Clean(c.Param("*"))
	if requested == "." || strings.Contains(requested, "..") || filepath.IsAbs(requested) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid asset path")
	}

	root, err := filepath.Abs(assetsDir())
	if err != nil {
		c.Logger().Errorf("Failed to resolve asset directory: %v", err)
		return echo.ErrInternalServerError
	}
	full := filepath.Join(root, requested)
	if !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	if !assetTypes[strings.ToLower(filepath.Ext(full))] {
		return echo.NewHTTPError(http.StatusForbidden, "File type not allowed")
	}

	info, err := os.Stat(full)
	switch {
	case os.IsNotExist(err):
		return echo.NewHTTPError(http.StatusNotFound, "Asset not found")
	case err != nil:
		return echo.ErrInternalServerError
	case info.IsDir():
		return echo.NewHTTPError(http.StatusForbidden, "Directory listing not allowed")
	}

	h := c.Response().Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "public, max-age=86400")
	return c.File(full)
}
