package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OK は成功レスポンスをそのままのJSONで返します
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// Created は作成成功レスポンスをそのままのJSONで返します
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// Message はテキストメッセージを200で返します
func Message(c echo.Context, message string) error {
	return c.String(http.StatusOK, message)
}
