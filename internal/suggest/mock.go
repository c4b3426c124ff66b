package suggest

import (
	"github.com/clawfood/clawfood/internal/model"
	"github.com/clawfood/clawfood/internal/placeholder"
)

// mockSuggestions is served when no model provider is configured.
var mockSuggestions = []struct {
	name, description, distance, address, price string
	rating                                      float64
}{
	{"Bún Chả Hương Liên", "Famous bún chả with a rich dipping sauce and fragrant grilled pork, popular with visitors from around the world.", "0.5km", "24 Lê Văn Hưu, Quận 1", "35k-55k", 4.5},
	{"Phở Thìn Bờ Hồ", "Traditional beef phở with a slow-simmered bone broth and soft rice noodles.", "1.2km", "13 Lò Đúc, Hai Bà Trưng", "40k-60k", 4.7},
	{"Báo Chả Hoàng Liên", "Cosy traditional eatery with a varied menu served from morning to night.", "0.8km", "45 Nguyễn Huệ, Quận 1", "30k-50k", 4.3},
	{"Cơm Tấm Sài Gòn", "Broken rice with grilled pork chop, shredded skin and egg meatloaf, served with house fish sauce.", "1.5km", "78 Pasteur, Quận 3", "35k-65k", 4.4},
	{"Bún Thịt Nướng Cô Ba", "Grilled pork vermicelli with crispy spring rolls, fresh herbs and sweet-sour fish sauce.", "2.0km", "112 Trần Hưng Đạo, Quận 5", "30k-45k", 4.6},
	{"Trà Sữa Bobapop", "Well-known milk tea shop with many flavours, chewy tapioca pearls and a modern space.", "0.3km", "56 Nguyễn Trãi, Quận 1", "25k-55k", 4.2},
}

// MockRestaurants returns the built-in suggestions, each tagged with
// keyword as its cuisine.
func MockRestaurants(keyword string) []model.Restaurant {
	out := make([]model.Restaurant, len(mockSuggestions))
	for i, m := range mockSuggestions {
		out[i] = model.Restaurant{
			ID:          idFor(i),
			Name:        m.name,
			Description: m.description,
			Distance:    m.distance,
			Rating:      model.Float(m.rating),
			Address:     m.address,
			PriceRange:  m.price,
			Cuisine:     keyword,
			Image:       placeholder.ForIndex(i),
		}
	}
	return out
}
