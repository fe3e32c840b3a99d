package httpapi

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/climatedash/emissions-dashboard/internal/assistant"
	"github.com/climatedash/emissions-dashboard/internal/emissions"
	"github.com/climatedash/emissions-dashboard/internal/search"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *emissions.Service, chat *assistant.Assistant, searcher *search.Searcher) {
	v1 := app.Group("/api/v1")

	v1.Get("/emissions/countries", func(c *fiber.Ctx) error {
		return c.JSON(service.CountryEmissions(c.Context(), parseQuery(c)))
	})

	v1.Get("/emissions/gases", func(c *fiber.Ctx) error {
		return c.JSON(service.AllGasesEmissions(c.Context(), parseQuery(c)))
	})

	v1.Get("/emissions/sectors", func(c *fiber.Ctx) error {
		return c.JSON(service.SectorEmissions(c.Context(), parseQuery(c)))
	})

	v1.Get("/emissions/regions", func(c *fiber.Ctx) error {
		return c.JSON(service.RegionalEmissions(c.Context(), parseQuery(c)))
	})

	v1.Get("/emissions/trends", func(c *fiber.Ctx) error {
		return c.JSON(service.EmissionsTrends(c.Context(), parseQuery(c)))
	})

	v1.Get("/definitions/countries", func(c *fiber.Ctx) error {
		return c.JSON(service.CountryDefinitions(c.Context()))
	})

	v1.Get("/definitions/sectors", func(c *fiber.Ctx) error {
		return c.JSON(service.SectorDefinitions(c.Context()))
	})

	v1.Post("/chat", func(c *fiber.Ctx) error {
		var req chatBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"reply": chat.Chat(c.Context(), req.Message),
		})
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))
		return c.JSON(fiber.Map{
			"query":   query,
			"results": searcher.Search(c.Context(), query),
		})
	})
}

// chatBody is the chat endpoint's request payload.
type chatBody struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// parseQuery reads the {since, to, countries, limit} option bag from query
// parameters. Malformed or missing years and limits are silently defaulted,
// never rejected; the core applies the 2023 default for zero years.
func parseQuery(c *fiber.Ctx) emissions.QueryOptions {
	opts := emissions.QueryOptions{
		Since: parseYear(c.Query("since")),
		To:    parseYear(c.Query("to")),
		Limit: parseInt(c.Query("limit")),
	}

	if csv := strings.TrimSpace(c.Query("countries")); csv != "" {
		for _, code := range strings.Split(csv, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				opts.Countries = append(opts.Countries, code)
			}
		}
	}

	return opts
}

func parseYear(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0 // core defaults zero years to 2023
	}
	return n
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
