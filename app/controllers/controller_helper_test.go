package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactilog/cactilog/app/models"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", query: "", wantOffset: 0, wantLimit: DefaultPageSize},
		{name: "second page", query: "?page=2&page_size=10", wantOffset: 10, wantLimit: 10},
		{name: "zero page falls back", query: "?page=0", wantOffset: 0, wantLimit: DefaultPageSize},
		{name: "negative size falls back", query: "?page_size=-5", wantOffset: 0, wantLimit: DefaultPageSize},
		{name: "oversized page is capped", query: "?page_size=9999", wantOffset: 0, wantLimit: MaxPageSize},
		{name: "garbage is ignored", query: "?page=abc&page_size=xyz", wantOffset: 0, wantLimit: DefaultPageSize},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			var gotOffset, gotLimit int
			app.Get("/", func(c *fiber.Ctx) error {
				gotOffset, gotLimit = ParsePagination(c)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.wantOffset, gotOffset)
			assert.Equal(t, tc.wantLimit, gotLimit)
		})
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headers  map[string]string
		wantIPv4 string
		wantIPv6 string
	}{
		{
			name:     "cloudflare header wins",
			headers:  map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"},
			wantIPv4: "203.0.113.7",
		},
		{
			name:     "cloudflare ipv6",
			headers:  map[string]string{"CF-Connecting-IP": "2001:db8::1"},
			wantIPv6: "2001:db8::1",
		},
		{
			name:     "forwarded chain picks first of each family",
			headers:  map[string]string{"X-Forwarded-For": "198.51.100.1, 2001:db8::2, 198.51.100.9"},
			wantIPv4: "198.51.100.1",
			wantIPv6: "2001:db8::2",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			var ipv4, ipv6 string
			app.Get("/", func(c *fiber.Ctx) error {
				ipv4, ipv6 = GetClientIP(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantIPv4, ipv4)
			assert.Equal(t, tc.wantIPv6, ipv6)
		})
	}
}

func TestBuildFeedItems(t *testing.T) {
	t.Parallel()

	takenAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	species := "bridgesii"
	photos := []models.PlantPhoto{
		{
			UUID:         "photo-uuid-1",
			FilePath:     "original/2025/06/photo-uuid-1.jpg",
			Width:        1200,
			Height:       900,
			HasThumbnail: true,
			TakenAt:      &takenAt,
			Plant: &models.Plant{
				UUID:    "plant-uuid-1",
				Genus:   "Trichocereus",
				Species: &species,
				User:    models.User{Name: "maria"},
			},
		},
		{
			UUID:     "photo-uuid-2",
			FilePath: "original/2025/06/photo-uuid-2.jpg",
			// Plant missing: row survives but plant context stays empty.
		},
	}

	items := buildFeedItems(photos)
	require.Len(t, items, 2)

	assert.Equal(t, "photo-uuid-1", items[0].PhotoUUID)
	assert.Equal(t, "Trichocereus bridgesii", items[0].PlantName)
	assert.Equal(t, "Trichocereus", items[0].Genus)
	assert.Equal(t, "maria", items[0].OwnerName)
	assert.True(t, items[0].HasThumbnail)
	assert.Equal(t, &takenAt, items[0].TakenAt)

	assert.Equal(t, "photo-uuid-2", items[1].PhotoUUID)
	assert.Empty(t, items[1].PlantUUID)
	assert.Empty(t, items[1].OwnerName)
}
