package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize bounds feed and listing pages.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// GetClientIP determines the actual client IP address considering proxies
// and dual stack. Returns both IPv4 and IPv6 addresses if available.
func GetClientIP(c *fiber.Ctx) (string, string) {
	ipv4 := ""
	ipv6 := ""

	// 1. Check for Cloudflare header
	cfIP := c.Get("CF-Connecting-IP")
	if cfIP != "" {
		if strings.Contains(cfIP, ":") {
			ipv6 = cfIP
		} else {
			ipv4 = cfIP
		}
	}

	// 2. Fall back to X-Forwarded-For
	if ipv4 == "" && ipv6 == "" {
		for _, ip := range strings.Split(c.Get("X-Forwarded-For"), ",") {
			ip = strings.TrimSpace(ip)
			if ip == "" {
				continue
			}
			if strings.Contains(ip, ":") {
				if ipv6 == "" {
					ipv6 = ip
				}
			} else if ipv4 == "" {
				ipv4 = ip
			}
		}
	}

	// 3. Finally the direct peer address
	if ipv4 == "" && ipv6 == "" {
		ip := c.IP()
		if strings.Contains(ip, ":") {
			ipv6 = ip
		} else {
			ipv4 = ip
		}
	}

	return ipv4, ipv6
}

// ParsePagination reads page/page_size query parameters into offset/limit.
// Pages are 1-based; out-of-range values fall back to defaults.
func ParsePagination(c *fiber.Ctx) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return (page - 1) * size, size
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
