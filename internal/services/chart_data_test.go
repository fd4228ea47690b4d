package services

import (
	"testing"
	"time"

	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
)

func seedSales(t *testing.T, db *gorm.DB) {
	t.Helper()
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		{ID: "s1", ItemID: "i1", ItemTitle: "Camera", Platform: "ebay", SoldPrice: 100, Fees: 10, Profit: 40, DateSold: day1},
		{ID: "s2", ItemID: "i2", ItemTitle: "Lens", Platform: "ebay", SoldPrice: 50, Fees: 5, Profit: 20, DateSold: day1},
		{ID: "s3", ItemID: "i1", ItemTitle: "Camera", Platform: "etsy", SoldPrice: 200, Fees: 0, Profit: 120, DateSold: day2},
	}
	if err := db.Create(&sales).Error; err != nil {
		t.Fatalf("seed sales: %v", err)
	}
}

func TestBuildChartData_SumByDate(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewChartDataService(db)

	points, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Revenue Trend",
		ChartType:   models.ChartTypeBar,
		DataSource:  models.DataSourceSales,
		XField:      "dateSold",
		YField:      "soldPrice",
		Aggregation: models.AggregationSum,
	})
	if err != nil {
		t.Fatalf("BuildChartData: %v", err)
	}

	want := []ChartPoint{
		{Label: "2026-03-01", Value: 150},
		{Label: "2026-03-02", Value: 200},
	}
	if len(points) != len(want) {
		t.Fatalf("got %d points, expected %d", len(points), len(want))
	}
	for i, w := range want {
		if points[i] != w {
			t.Errorf("point %d = %+v, expected %+v", i, points[i], w)
		}
	}
}

func TestBuildChartData_GroupByOverridesXField(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewChartDataService(db)

	groupBy := "platform"
	points, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Sales by Platform",
		ChartType:   models.ChartTypeDonut,
		DataSource:  models.DataSourceSales,
		XField:      "dateSold",
		YField:      "id",
		Aggregation: models.AggregationCount,
		GroupBy:     &groupBy,
	})
	if err != nil {
		t.Fatalf("BuildChartData: %v", err)
	}

	want := []ChartPoint{
		{Label: "ebay", Value: 2},
		{Label: "etsy", Value: 1},
	}
	if len(points) != len(want) {
		t.Fatalf("got %d points, expected %d", len(points), len(want))
	}
	for i, w := range want {
		if points[i] != w {
			t.Errorf("point %d = %+v, expected %+v", i, points[i], w)
		}
	}
}

func TestBuildChartData_Aggregations(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewChartDataService(db)

	tests := []struct {
		aggregation string
		ebay        float64
	}{
		{models.AggregationSum, 150},
		{models.AggregationAverage, 75},
		{models.AggregationCount, 2},
		{models.AggregationMin, 50},
		{models.AggregationMax, 100},
	}
	groupBy := "platform"
	for _, tt := range tests {
		t.Run(tt.aggregation, func(t *testing.T) {
			points, err := svc.BuildChartData(&models.ChartDefinition{
				Title:       "By Platform",
				ChartType:   models.ChartTypeBar,
				DataSource:  models.DataSourceSales,
				XField:      "platform",
				YField:      "soldPrice",
				Aggregation: tt.aggregation,
				GroupBy:     &groupBy,
			})
			if err != nil {
				t.Fatalf("BuildChartData: %v", err)
			}
			if points[0].Label != "ebay" || points[0].Value != tt.ebay {
				t.Errorf("ebay bucket = %+v, expected value %v", points[0], tt.ebay)
			}
		})
	}
}

func TestBuildChartData_FormulaAppliesAfterAggregation(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewChartDataService(db)

	groupBy := "platform"
	points, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Fee Ratio",
		ChartType:   models.ChartTypeBar,
		DataSource:  models.DataSourceSales,
		XField:      "platform",
		YField:      "soldPrice",
		Aggregation: models.AggregationSum,
		GroupBy:     &groupBy,
		Formula: &models.FormulaConfig{
			Operation: models.FormulaDivide,
			Field1:    "fees",
			Field2:    "soldPrice",
		},
	})
	if err != nil {
		t.Fatalf("BuildChartData: %v", err)
	}

	// ebay: sum(fees)=15 / sum(soldPrice)=150, aggregated before dividing
	if points[0].Label != "ebay" || points[0].Undefined || points[0].Value != 0.1 {
		t.Errorf("ebay bucket = %+v, expected value 0.1", points[0])
	}
	// etsy: 0 / 200 is a defined zero
	if points[1].Label != "etsy" || points[1].Undefined || points[1].Value != 0 {
		t.Errorf("etsy bucket = %+v, expected value 0", points[1])
	}
}

func TestBuildChartData_DivideByZeroBucketIsUndefined(t *testing.T) {
	db := newTestDB(t)
	svc := NewChartDataService(db)

	sale := models.Sale{ID: "s1", Platform: "ebay", SoldPrice: 0, Fees: 5,
		DateSold: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	groupBy := "platform"
	points, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Fee Ratio",
		ChartType:   models.ChartTypeBar,
		DataSource:  models.DataSourceSales,
		XField:      "platform",
		YField:      "soldPrice",
		Aggregation: models.AggregationSum,
		GroupBy:     &groupBy,
		Formula: &models.FormulaConfig{
			Operation: models.FormulaDivide,
			Field1:    "fees",
			Field2:    "soldPrice",
		},
	})
	if err != nil {
		t.Fatalf("BuildChartData: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if !points[0].Undefined {
		t.Error("bucket dividing by zero should be undefined")
	}
}

func TestBuildChartData_CombinedSource(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	purchase := models.Purchase{ID: "p1", BatchName: "March lot", Supplier: "acme",
		Cost: 80, DatePurchased: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("seed purchase: %v", err)
	}
	svc := NewChartDataService(db)

	points, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Activity",
		ChartType:   models.ChartTypeBar,
		DataSource:  models.DataSourceCombined,
		XField:      "id",
		YField:      "id",
		Aggregation: models.AggregationCount,
	})
	if err != nil {
		t.Fatalf("BuildChartData: %v", err)
	}
	if len(points) != 4 {
		t.Errorf("combined source should see 3 sales + 1 purchase, got %d buckets", len(points))
	}
}

func TestBuildChartData_UnknownSource(t *testing.T) {
	svc := NewChartDataService(newTestDB(t))
	_, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Broken",
		ChartType:   models.ChartTypeBar,
		DataSource:  "ledger",
		Aggregation: models.AggregationSum,
	})
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestBuildChartData_UnknownLabelFieldFallsBack(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewChartDataService(db)

	points, err := svc.BuildChartData(&models.ChartDefinition{
		Title:       "Mystery",
		ChartType:   models.ChartTypeBar,
		DataSource:  models.DataSourceSales,
		XField:      "nonexistent",
		YField:      "soldPrice",
		Aggregation: models.AggregationSum,
	})
	if err != nil {
		t.Fatalf("BuildChartData: %v", err)
	}
	if len(points) != 1 || points[0].Label != "Unknown" {
		t.Errorf("rows with an unknown bucket field should collapse into one Unknown bucket, got %+v", points)
	}
}
