package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"productstore/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationError lists every product field that was missing or malformed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "invalid product input: " + strings.Join(parts, "; ")
}

// readProductFields collects the raw request fields from a JSON object or a form body.
func readProductFields(c *fiber.Ctx) (map[string]any, error) {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		fields := make(map[string]any)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			fields[string(key)] = string(value)
		})
		return fields, nil
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("invalid multipart body: %w", err)
		}
		fields := make(map[string]any)
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return fields, nil
	}

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return map[string]any{}, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return nil, fmt.Errorf("request body must be a JSON object: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ParseProductInput turns raw request fields into a typed ProductInput.
// All four fields are mandatory; every problem found is reported in a *ValidationError.
func ParseProductInput(validate *validator.Validate, fields map[string]any) (models.ProductInput, error) {
	problems := make(map[string]string)
	var input models.ProductInput

	if v, ok := requiredField(fields, "name", problems); ok {
		input.Name, ok = v.(string)
		if !ok {
			problems["name"] = "must be a string"
		}
	}
	if v, ok := requiredField(fields, "description", problems); ok {
		input.Description, ok = v.(string)
		if !ok {
			problems["description"] = "must be a string"
		}
	}
	if v, ok := requiredField(fields, "price", problems); ok {
		price, err := parsePrice(v)
		if err != nil {
			problems["price"] = err.Error()
		}
		input.Price = price
	}
	if v, ok := requiredField(fields, "qty", problems); ok {
		qty, err := parseQty(v)
		if err != nil {
			problems["qty"] = err.Error()
		}
		input.Qty = qty
	}

	if len(problems) > 0 {
		return models.ProductInput{}, &ValidationError{Fields: problems}
	}

	if err := validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return models.ProductInput{}, err
		}
		for _, e := range validationErrors {
			problems[strings.ToLower(e.Field())] = describeTag(e)
		}
		return models.ProductInput{}, &ValidationError{Fields: problems}
	}

	return input, nil
}

func requiredField(fields map[string]any, name string, problems map[string]string) (any, bool) {
	v, ok := fields[name]
	if !ok || v == nil {
		problems[name] = "is required"
		return nil, false
	}
	return v, true
}

func parsePrice(v any) (float64, error) {
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return 0, errors.New("must be a number")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.New("must be a number")
	}
	return price, nil
}

func parseQty(v any) (int, error) {
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return 0, errors.New("must be an integer")
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	return qty, nil
}

func describeTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	}
	return fmt.Sprintf("failed on the '%s' tag", e.Tag())
}
