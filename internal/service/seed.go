package service

import (
	"fmt"

	"shophub/internal/models"
)

// seedItem is one base product of the sample catalog.
type seedItem struct {
	name        string
	description string
	price       float64
	stock       int
}

var seedVariants = []string{"Classic", "Pro", "Max", "Lite"}

var seedCatalog = map[string][]seedItem{
	models.CategoryElectronics: {
		{"Wireless Headphones", "Over-ear Bluetooth headphones with active noise cancellation and 30-hour battery life.", 89.99, 40},
		{"Smart Watch", "Fitness tracking smart watch with heart-rate monitor and GPS.", 149.99, 25},
		{"Bluetooth Speaker", "Portable waterproof speaker with deep bass and 12-hour playtime.", 39.99, 60},
		{"USB-C Charging Hub", "7-in-1 hub with HDMI, card reader, and 100W pass-through charging.", 29.99, 80},
		{"Mechanical Keyboard", "Compact tenkeyless keyboard with hot-swappable switches and RGB backlight.", 74.99, 35},
	},
	models.CategoryClothing: {
		{"Cotton T-Shirt", "Soft 100% combed cotton tee with a relaxed fit.", 14.99, 120},
		{"Denim Jacket", "Mid-weight denim jacket with a vintage wash.", 59.99, 45},
		{"Running Shoes", "Lightweight road running shoes with responsive cushioning.", 84.99, 50},
		{"Wool Beanie", "Warm merino wool beanie, one size fits most.", 17.99, 90},
		{"Rain Parka", "Packable waterproof parka with sealed seams.", 69.99, 30},
	},
	models.CategoryHome: {
		{"French Press", "8-cup borosilicate glass french press with stainless filter.", 24.99, 55},
		{"Scented Candle", "Hand-poured soy candle, 45-hour burn time.", 12.99, 150},
		{"Throw Blanket", "Chunky knit throw blanket in a neutral palette.", 34.99, 70},
		{"Chef's Knife", "8-inch high-carbon stainless chef's knife with full tang.", 49.99, 40},
		{"Ceramic Planter", "Matte ceramic planter with drainage tray, fits 6-inch pots.", 19.99, 85},
	},
}

// sampleProducts builds the 60-product sample catalog: each base item in
// four variants, with variant pricing stepped up from the base.
func sampleProducts() []models.Product {
	products := make([]models.Product, 0, 60)

	for _, category := range []string{models.CategoryElectronics, models.CategoryClothing, models.CategoryHome} {
		for i, item := range seedCatalog[category] {
			for j, variant := range seedVariants {
				products = append(products, models.Product{
					Name:          fmt.Sprintf("%s %s", item.name, variant),
					Description:   item.description,
					Category:      category,
					Price:         item.price + float64(j)*10,
					ImageURL:      fmt.Sprintf("https://picsum.photos/seed/shophub-%s-%d-%d/600/600", category, i, j),
					StockQuantity: item.stock - j*5,
				})
			}
		}
	}

	return products
}
