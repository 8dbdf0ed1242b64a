package dashboard

import (
	"delivery-admin/internal/i18n"

	"github.com/gofiber/fiber/v2"
)

type NavItem struct {
	Href     string `json:"href"`
	LabelKey string `json:"label_key"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
}

var navigation = []NavItem{
	{Href: "/dashboard", LabelKey: "nav.overview", Icon: "layout-dashboard"},
	{Href: "/dashboard/restaurants", LabelKey: "nav.restaurants", Icon: "store"},
	{Href: "/dashboard/products", LabelKey: "nav.products", Icon: "utensils"},
	{Href: "/dashboard/categories", LabelKey: "nav.categories", Icon: "tags"},
	{Href: "/dashboard/events", LabelKey: "nav.events", Icon: "calendar"},
	{Href: "/dashboard/party-requests", LabelKey: "nav.party_requests", Icon: "party-popper"},
	{Href: "/dashboard/addons", LabelKey: "nav.addons", Icon: "plus-circle"},
	{Href: "/dashboard/offers", LabelKey: "nav.offers", Icon: "percent"},
	{Href: "/dashboard/riders", LabelKey: "nav.riders", Icon: "bike"},
	{Href: "/dashboard/customers", LabelKey: "nav.customers", Icon: "users"},
	{Href: "/dashboard/orders", LabelKey: "nav.orders", Icon: "shopping-bag"},
	{Href: "/dashboard/files", LabelKey: "nav.files", Icon: "folder"},
	{Href: "/dashboard/content", LabelKey: "nav.content", Icon: "file-text"},
	{Href: "/dashboard/config", LabelKey: "nav.config", Icon: "settings"},
}

// Navigation returns the sidebar entries labelled in lang.
func Navigation(lang string) []NavItem {
	items := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Label = i18n.T(lang, item.LabelKey)
		items[i] = item
	}
	return items
}

// GET /api/dashboard/nav
func NavHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Navigation(i18n.Lang(c)))
	}
}
