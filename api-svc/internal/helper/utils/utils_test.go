package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorBody(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body["error"]
}

func TestHandleError(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c *fiber.Ctx) error { return HandleError(c, BadRequest("nope")) })
	app.Get("/missing", func(c *fiber.Ctx) error { return HandleError(c, NotFound("Job not found")) })
	app.Get("/internal", func(c *fiber.Ctx) error { return HandleError(c, Internal(errors.New("db down"))) })
	app.Get("/raw", func(c *fiber.Ctx) error { return HandleError(c, errors.New("secret detail")) })

	status, msg := errorBody(t, app, "/bad")
	assert.Equal(t, 400, status)
	assert.Equal(t, "nope", msg)

	status, msg = errorBody(t, app, "/missing")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Job not found", msg)

	status, msg = errorBody(t, app, "/internal")
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", msg)

	status, msg = errorBody(t, app, "/raw")
	assert.Equal(t, 500, status)
	assert.NotContains(t, msg, "secret")
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("constraint")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 500, StatusOf(err))
	assert.Equal(t, 403, StatusOf(Forbidden("x")))
	assert.Equal(t, 500, StatusOf(errors.New("plain")))
}

type signupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestValidate(t *testing.T) {
	err := Validate(&signupInput{Email: "a@b.co", Password: "123456", Rating: 3})
	assert.NoError(t, err)

	err = Validate(&signupInput{Password: "123456", Rating: 3})
	require.Error(t, err)
	assert.Equal(t, "email is required", err.(*AppError).Message)

	err = Validate(&signupInput{Email: "a@b.co", Password: "123", Rating: 3})
	assert.Equal(t, "password must be at least 6 characters", err.(*AppError).Message)

	err = Validate(&signupInput{Email: "a@b.co", Password: "123456", Rating: 9})
	assert.Equal(t, "rating is out of range", err.(*AppError).Message)
}

func TestValidate_NoControl(t *testing.T) {
	type profile struct {
		Name     string  `json:"name" validate:"required,nocontrol"`
		Nickname *string `json:"nickname" validate:"omitempty,nocontrol"`
	}

	assert.NoError(t, Validate(&profile{Name: "Zoë O'Neil"}))

	err := Validate(&profile{Name: "Eve\r\nBcc: x@example.com"})
	require.Error(t, err)
	assert.Equal(t, "name must not contain control characters", err.(*AppError).Message)

	nick := "tab\there"
	err = Validate(&profile{Name: "Eve", Nickname: &nick})
	require.Error(t, err)
	assert.Equal(t, "nickname must not contain control characters", err.(*AppError).Message)
}

func TestParseAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in signupInput
		if err := ParseAndValidate(c, &in); err != nil {
			return HandleError(c, err)
		}
		return ResponseSuccess(c, 200, in.Email)
	})

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","password":"secret1","rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
