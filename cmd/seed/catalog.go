package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const (
	bakerySheet  = "bakeries"
	productSheet = "products"
)

// bakeries 시트 컬럼 순서
// owner_email, owner_name, name, city, address, pincode, phone, min_order_amount, delivery_fee, delivery_time_mins
const bakeryColumns = 10

// products 시트 컬럼 순서
// bakery_slug, name, price, discount_price, stock_quantity, is_vegetarian, description
const productColumns = 6

type BakeryRow struct {
	OwnerEmail string
	OwnerName  string
	Bakery     model.Bakery
}

// Catalog 시트에서 읽은 매장과 slug별 상품
type Catalog struct {
	Bakeries []BakeryRow
	Products map[string][]model.Product
	Skipped  int
}

func (c *Catalog) productCount() int {
	n := 0
	for _, products := range c.Products {
		n += len(products)
	}
	return n
}

func readCatalog(filePath string) (*Catalog, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	return parseCatalog(f)
}

func parseCatalog(f *excelize.File) (*Catalog, error) {
	bakeryRows, err := f.GetRows(bakerySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", bakerySheet, err)
	}
	if len(bakeryRows) < 2 {
		return nil, fmt.Errorf("no bakeries found in XLSX file")
	}

	catalog := &Catalog{Products: make(map[string][]model.Product)}
	knownSlugs := make(map[string]bool)
	seenOwners := make(map[string]bool)

	// 첫 행은 헤더
	for _, row := range bakeryRows[1:] {
		if len(row) < bakeryColumns {
			catalog.Skipped++
			continue
		}

		email := strings.ToLower(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[2])
		city := strings.TrimSpace(row[3])
		address := strings.TrimSpace(row[4])
		if email == "" || name == "" || city == "" || address == "" || seenOwners[email] {
			catalog.Skipped++
			continue
		}
		seenOwners[email] = true

		// Slug 생성 (중복 시 -2, -3 ...)
		base := generateSlug(city, name)
		slug := base
		for n := 2; knownSlugs[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		knownSlugs[slug] = true

		catalog.Bakeries = append(catalog.Bakeries, BakeryRow{
			OwnerEmail: email,
			OwnerName:  strings.TrimSpace(row[1]),
			Bakery: model.Bakery{
				Name:             name,
				Slug:             slug,
				City:             city,
				Address:          address,
				Pincode:          strings.TrimSpace(row[5]),
				Phone:            strings.TrimSpace(row[6]),
				MinOrderAmount:   parseFloat(row[7]),
				DeliveryFee:      parseFloat(row[8]),
				DeliveryTimeMins: parseInt(row[9], 30),
				// 관리자 승인 전까지 노출되지 않음
				IsApproved: false,
				IsOpen:     true,
			},
		})
	}

	productRows, err := f.GetRows(productSheet)
	if err != nil {
		// 상품 시트는 선택
		return catalog, nil
	}

	for _, row := range productRows[min(1, len(productRows)):] {
		if len(row) < productColumns {
			catalog.Skipped++
			continue
		}

		slug := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		price := parseFloat(row[2])
		if !knownSlugs[slug] || name == "" || price <= 0 {
			catalog.Skipped++
			continue
		}

		product := model.Product{
			Name:          name,
			Price:         price,
			StockQuantity: parseInt(row[4], 0),
			IsAvailable:   true,
			IsVegetarian:  parseBool(row[5]),
		}
		if discount := parseFloat(row[3]); discount > 0 && discount < price {
			product.DiscountPrice = &discount
		}
		if len(row) > productColumns {
			product.Description = strings.TrimSpace(row[productColumns])
		}
		catalog.Products[slug] = append(catalog.Products[slug], product)
	}

	return catalog, nil
}

var (
	slugInvalid = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// generateSlug 도시와 매장명으로 URL용 slug 생성
func generateSlug(city, name string) string {
	slug := slugInvalid.ReplaceAllString(city+"-"+name, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.ToLower(strings.Trim(slug, "-"))
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
