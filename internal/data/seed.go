package data

import (
	"github.com/shopspring/decimal"

	"bugana-shop/internal/models"
)

// SeedProducts devuelve el catálogo inicial de la tienda. Se carga una
// sola vez en el arranque cuando no hay snapshot persistido.
func SeedProducts() []models.Product {
	return []models.Product{
		seed("Piña Barong Tagalog", "4500.00", "https://picsum.photos/seed/pina/400/400", "Apparel", true,
			"An elegant, hand-woven formal shirt made from pineapple leaf fibers. A staple of Filipino formal wear."),
		seed("Abaca Tote Bag", "850.50", "https://picsum.photos/seed/abaca/400/400", "Accessories", true,
			"A durable and stylish tote bag handcrafted from natural abaca fibers, perfect for everyday use."),
		seed("Bariw Sleeping Mat (Banig)", "1200.00", "https://picsum.photos/seed/bariw/400/400", "Home Goods", false,
			"A traditional handwoven mat made from dried bariw leaves. Cool, comfortable, and beautifully intricate."),
		seed("Aklanon Tinuom na Manok", "250.00", "https://picsum.photos/seed/tinuom/400/400", "Food", true,
			"A savory Aklanon delicacy of native chicken seasoned with spices, wrapped in banana leaves, and steamed to perfection."),
		seed("Sweet Ampaw Pops", "75.00", "https://picsum.photos/seed/ampaw/400/400", "Snacks", true,
			"Crispy puffed rice treats sweetened with syrup. A classic Filipino snack that is light and delightful."),
		seed("Nito Vine Basket", "600.00", "https://picsum.photos/seed/nito/400/400", "Home Goods", true,
			"A sturdy and decorative basket woven from nito vines, showcasing indigenous Aklanon craftsmanship."),
		seed("Coconut Shell Bowl", "150.00", "https://picsum.photos/seed/coconut/400/400", "Home Goods", false,
			"An eco-friendly bowl made from polished coconut shells. Ideal for salads, snacks, or as a decorative piece."),
		seed("Kalibo Longganisa", "180.00", "https://picsum.photos/seed/longganisa/400/400", "Food", true,
			"A flavorful local sausage from Kalibo, known for its distinct garlicky and savory taste."),
	}
}

func seed(name, price, image, category string, inStock bool, description string) models.Product {
	return models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Image:    image,
		Category: category,
		InStock:  inStock,
		Descriptions: map[string]string{
			models.LangEN: description,
		},
	}
}
