package service

import (
	"errors"
	"testing"

	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductService(t *testing.T, maxCombinations int) *ProductService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductOption{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("auto migrate product tables failed: %v", err)
	}
	db.Unscoped().Where("1 = 1").Delete(&models.ProductVariant{})
	db.Unscoped().Where("1 = 1").Delete(&models.ProductOption{})
	db.Unscoped().Where("1 = 1").Delete(&models.Product{})
	db.Unscoped().Where("1 = 1").Delete(&models.Category{})

	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductOptionRepository(db),
		repository.NewProductVariantRepository(db),
		repository.NewCategoryRepository(db),
		maxCombinations,
	)
}

func seedProduct(t *testing.T, svc *ProductService, slug string) *models.Product {
	t.Helper()
	product, err := svc.Create(&models.Product{
		Slug:      slug,
		Title:     "Widget",
		BasePrice: models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
		Currency:  "USD",
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func TestProductService_CreateRejectsDuplicateSlug(t *testing.T) {
	svc := newProductService(t, 0)
	seedProduct(t, svc, "widget")

	_, err := svc.Create(&models.Product{
		Slug:      "widget",
		Title:     "Widget Again",
		BasePrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug collision, got %v", err)
	}
}

func TestProductService_SaveVariantSpace(t *testing.T) {
	svc := newProductService(t, 0)
	product := seedProduct(t, svc, "tee")

	defs := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S", "M"}},
	}
	saved, err := svc.SaveVariantSpace(product.ID, defs, nil)
	if err != nil {
		t.Fatalf("save variant space failed: %v", err)
	}
	if len(saved.Options) != 2 {
		t.Fatalf("expected 2 persisted options, got %d", len(saved.Options))
	}
	if len(saved.Variants) != 4 {
		t.Fatalf("expected 4 variants, got %d", len(saved.Variants))
	}

	codes := make(map[string]bool, len(saved.Variants))
	for _, variant := range saved.Variants {
		codes[variant.VariantCode] = true
	}
	for _, expected := range []string{"D001", "D002", "D003", "D004"} {
		if !codes[expected] {
			t.Fatalf("expected variant code %q persisted", expected)
		}
	}
}

func TestProductService_SaveVariantSpaceMergesEnteredValues(t *testing.T) {
	svc := newProductService(t, 0)
	product := seedProduct(t, svc, "hoodie")

	defs := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue"}},
	}
	saved, err := svc.SaveVariantSpace(product.ID, defs, nil)
	if err != nil {
		t.Fatalf("initial save failed: %v", err)
	}

	// 录入库存后扩展取值再保存，既有编号的记录保留录入值
	var first models.ProductVariant
	for _, variant := range saved.Variants {
		if variant.VariantCode == "D001" {
			first = variant
		}
	}
	first.Stock = 9
	if err := svc.variantRepo.UpdateStock(first.ID, 9); err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	expanded := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue", "Green"}},
	}
	saved, err = svc.SaveVariantSpace(product.ID, expanded, nil)
	if err != nil {
		t.Fatalf("expanded save failed: %v", err)
	}
	if len(saved.Variants) != 3 {
		t.Fatalf("expected 3 variants after expansion, got %d", len(saved.Variants))
	}
	for _, variant := range saved.Variants {
		if variant.VariantCode == "D001" && variant.Stock != 9 {
			t.Fatalf("expected D001 stock preserved across regeneration, got %d", variant.Stock)
		}
	}
}

func TestProductService_SaveVariantSpaceFailsClosedOnShrink(t *testing.T) {
	svc := newProductService(t, 0)
	product := seedProduct(t, svc, "mug")

	defs := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S", "M"}},
	}
	if _, err := svc.SaveVariantSpace(product.ID, defs, nil); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}

	// 删除 Size 属性：旧的双属性记录不可再推导，整体丢弃后重新物化
	colorOnly := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue"}},
	}
	saved, err := svc.SaveVariantSpace(product.ID, colorOnly, nil)
	if err != nil {
		t.Fatalf("shrink save failed: %v", err)
	}
	if len(saved.Variants) != 2 {
		t.Fatalf("expected 2 variants over Color alone, got %d", len(saved.Variants))
	}
	for _, variant := range saved.Variants {
		if _, ok := variant.Attributes["Size"]; ok {
			t.Fatalf("expected stale Size attribute dropped, got %v", variant.Attributes)
		}
	}

	// 属性全部删除 → 变体表清空
	saved, err = svc.SaveVariantSpace(product.ID, nil, nil)
	if err != nil {
		t.Fatalf("clear save failed: %v", err)
	}
	if len(saved.Variants) != 0 {
		t.Fatalf("expected empty variant table with zero definitions, got %d", len(saved.Variants))
	}
	if len(saved.Options) != 0 {
		t.Fatalf("expected options cleared, got %d", len(saved.Options))
	}
}

func TestProductService_SaveVariantSpaceRespectsExclusions(t *testing.T) {
	svc := newProductService(t, 0)
	product := seedProduct(t, svc, "cap")

	defs := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S", "M"}},
	}
	saved, err := svc.SaveVariantSpace(product.ID, defs, []string{"Red x S"})
	if err != nil {
		t.Fatalf("save with exclusion failed: %v", err)
	}
	if len(saved.Variants) != 3 {
		t.Fatalf("expected 3 variants with one exclusion, got %d", len(saved.Variants))
	}
	for _, variant := range saved.Variants {
		if variant.Attributes["Color"] == "Red" && variant.Attributes["Size"] == "S" {
			t.Fatalf("expected excluded combination to be absent")
		}
	}
}

func TestProductService_CombinationCeiling(t *testing.T) {
	svc := newProductService(t, 8)
	product := seedProduct(t, svc, "poster")

	defs := []OptionDefinition{
		{Name: "Color", Values: []string{"A", "B", "C"}},
		{Name: "Size", Values: []string{"1", "2", "3"}},
	}
	if _, err := svc.PreviewCombinations(defs, nil); !errors.Is(err, ErrVariantSpaceTooLarge) {
		t.Fatalf("expected ceiling rejection on preview, got %v", err)
	}
	if _, err := svc.SaveVariantSpace(product.ID, defs, nil); !errors.Is(err, ErrVariantSpaceTooLarge) {
		t.Fatalf("expected ceiling rejection on save, got %v", err)
	}

	within := []OptionDefinition{
		{Name: "Color", Values: []string{"A", "B"}},
		{Name: "Size", Values: []string{"1", "2"}},
	}
	if _, err := svc.SaveVariantSpace(product.ID, within, nil); err != nil {
		t.Fatalf("expected save within ceiling to succeed: %v", err)
	}
}

func TestProductService_InvalidDefinitions(t *testing.T) {
	svc := newProductService(t, 0)

	dupName := []OptionDefinition{
		{Name: "Color", Values: []string{"Red"}},
		{Name: "Color", Values: []string{"Blue"}},
	}
	if _, err := svc.PreviewCombinations(dupName, nil); !errors.Is(err, ErrOptionInvalid) {
		t.Fatalf("expected duplicate option name rejection, got %v", err)
	}

	dupValue := []OptionDefinition{
		{Name: "Color", Values: []string{"Red", "Red"}},
	}
	if _, err := svc.PreviewCombinations(dupValue, nil); !errors.Is(err, ErrOptionInvalid) {
		t.Fatalf("expected duplicate value rejection, got %v", err)
	}
}
