package service

type seedProduct struct {
	barcode  string
	name     string
	category string
	supplier string
	price    int64
	stock    int
	minStock int
}

var defaultProducts = []seedProduct{
	{"8996001600647", "Indomie Goreng", "Makanan Instan", "PT Indofood", 2500, 50, 5},
	{"8998866603196", "Aqua 600ml", "Minuman", "PT Aqua Golden Mississippi", 3000, 100, 10},
	{"8999999533448", "Chitato", "Snack", "PT Indofood", 12000, 25, 5},
	{"8996001300159", "Beras Ramos 5kg", "Bahan Pokok", "PT Beras Ramos", 65000, 15, 3},
	{"8991002101740", "Minyak Goreng Bimoli 2L", "Bahan Pokok", "PT Salim Ivomas", 32000, 8, 5},
}

var defaultCategories = []string{
	"Makanan Instan",
	"Minuman",
	"Snack",
	"Bahan Pokok",
	"Kebutuhan Rumah Tangga",
	"Personal Care",
	"Lainnya",
}

// SeedDefaultData fills an empty catalog with the starter products and
// categories. Collections that already hold records are left untouched, so
// calling this on every start is safe.
func SeedDefaultData(catalog CatalogService) error {
	products, err := catalog.Products()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		for _, p := range defaultProducts {
			if _, err := catalog.AddProduct(p.barcode, p.name, p.category, p.supplier, p.price, p.stock, p.minStock); err != nil {
				return err
			}
		}
	}

	categories, err := catalog.Categories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		for _, name := range defaultCategories {
			if _, err := catalog.AddCategory(name); err != nil {
				return err
			}
		}
	}

	return nil
}
