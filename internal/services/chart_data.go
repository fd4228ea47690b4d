package services

import (
	"sort"
	"strconv"

	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
)

// ChartPoint is one plotted bucket. Every data source adapts into this single
// closed shape so rendering never needs runtime type inspection. Undefined
// marks a bucket whose formula divided by zero.
type ChartPoint struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Undefined bool    `json:"undefined,omitempty"`
}

// ChartDataService turns a chart definition into plotted points: it loads the
// rows for the chart's data source, groups them into buckets, aggregates per
// bucket and applies the optional formula on the aggregated values.
type ChartDataService struct {
	db *gorm.DB
}

func NewChartDataService(db *gorm.DB) *ChartDataService {
	return &ChartDataService{db: db}
}

// sourceRow is one row of a data source flattened into label fields and
// numeric fields. Unknown fields resolve to zero / empty.
type sourceRow struct {
	labels  map[string]string
	numbers map[string]float64
}

func (r sourceRow) number(field string) float64 { return r.numbers[field] }

func (r sourceRow) label(field string) string {
	if v, ok := r.labels[field]; ok && v != "" {
		return v
	}
	if v, ok := r.numbers[field]; ok {
		return formatNumberLabel(v)
	}
	return "Unknown"
}

// formatNumberLabel keeps a stable short encoding for buckets keyed by a
// numeric field.
func formatNumberLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildChartData computes the plotted points for one chart. With a groupBy
// set, rows bucket by that field, otherwise by xField. The aggregation runs
// per bucket before any formula: sum(field1) and sum(field2) are each taken
// over the bucket's rows, then combined. The formula never sees unaggregated
// row-level pairs.
func (s *ChartDataService) BuildChartData(chart *models.ChartDefinition) ([]ChartPoint, error) {
	if err := validateChart(chart); err != nil {
		return nil, err
	}

	rows, err := s.loadRows(chart.DataSource)
	if err != nil {
		return nil, err
	}

	bucketField := chart.XField
	if chart.GroupBy != nil && *chart.GroupBy != "" {
		bucketField = *chart.GroupBy
	}

	buckets := make(map[string][]sourceRow)
	for _, row := range rows {
		key := row.label(bucketField)
		buckets[key] = append(buckets[key], row)
	}

	points := make([]ChartPoint, 0, len(buckets))
	for label, bucket := range buckets {
		points = append(points, buildPoint(chart, label, bucket))
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points, nil
}

func buildPoint(chart *models.ChartDefinition, label string, bucket []sourceRow) ChartPoint {
	if chart.Formula != nil {
		v1 := aggregate(chart.Aggregation, fieldValues(bucket, chart.Formula.Field1))
		v2 := aggregate(chart.Aggregation, fieldValues(bucket, chart.Formula.Field2))
		res := EvaluateFormula(chart.Formula.Operation, v1, v2)
		return ChartPoint{Label: label, Value: res.Value, Undefined: res.Undefined}
	}
	return ChartPoint{Label: label, Value: aggregate(chart.Aggregation, fieldValues(bucket, chart.YField))}
}

func fieldValues(bucket []sourceRow, field string) []float64 {
	vals := make([]float64, len(bucket))
	for i, row := range bucket {
		vals[i] = row.number(field)
	}
	return vals
}

// aggregate reduces a bucket's values. Buckets are never empty: a bucket
// exists only because at least one row hashed into it.
func aggregate(op string, vals []float64) float64 {
	switch op {
	case models.AggregationCount:
		return float64(len(vals))
	case models.AggregationSum, models.AggregationAverage:
		var sum float64
		for _, v := range vals {
			sum += v
		}
		if op == models.AggregationAverage {
			return sum / float64(len(vals))
		}
		return sum
	case models.AggregationMin:
		min := vals[0]
		for _, v := range vals[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case models.AggregationMax:
		max := vals[0]
		for _, v := range vals[1:] {
			if v > max {
				max = v
			}
		}
		return max
	}
	return 0
}

func (s *ChartDataService) loadRows(dataSource string) ([]sourceRow, error) {
	switch dataSource {
	case models.DataSourceInventory:
		return s.loadItemRows()
	case models.DataSourceSales:
		return s.loadSaleRows()
	case models.DataSourcePurchases:
		return s.loadPurchaseRows()
	case models.DataSourceCombined:
		sales, err := s.loadSaleRows()
		if err != nil {
			return nil, err
		}
		purchases, err := s.loadPurchaseRows()
		if err != nil {
			return nil, err
		}
		return append(sales, purchases...), nil
	}
	return nil, newValidationError("unknown_data_source", "unknown data source %q", dataSource)
}

const bucketDateLayout = "2006-01-02"

func (s *ChartDataService) loadItemRows() ([]sourceRow, error) {
	var items []models.Item
	if err := s.db.Find(&items).Error; err != nil {
		return nil, wrapPersistence("BuildChartData", err)
	}
	rows := make([]sourceRow, len(items))
	for i, it := range items {
		rows[i] = sourceRow{
			labels: map[string]string{
				"id":        it.ID,
				"title":     it.Title,
				"sku":       it.SKU,
				"category":  it.Category,
				"brand":     it.Brand,
				"status":    it.Status,
				"condition": it.Condition,
				"dateAdded": it.DateAdded.Format(bucketDateLayout),
			},
			numbers: map[string]float64{
				"purchasePrice": it.PurchasePrice,
				"quantity":      float64(it.Quantity),
			},
		}
	}
	return rows, nil
}

func (s *ChartDataService) loadSaleRows() ([]sourceRow, error) {
	var sales []models.Sale
	if err := s.db.Find(&sales).Error; err != nil {
		return nil, wrapPersistence("BuildChartData", err)
	}
	rows := make([]sourceRow, len(sales))
	for i, sl := range sales {
		rows[i] = sourceRow{
			labels: map[string]string{
				"id":        sl.ID,
				"itemId":    sl.ItemID,
				"itemTitle": sl.ItemTitle,
				"platform":  sl.Platform,
				"dateSold":  sl.DateSold.Format(bucketDateLayout),
			},
			numbers: map[string]float64{
				"soldPrice": sl.SoldPrice,
				"fees":      sl.Fees,
				"profit":    sl.Profit,
			},
		}
	}
	return rows, nil
}

func (s *ChartDataService) loadPurchaseRows() ([]sourceRow, error) {
	var purchases []models.Purchase
	if err := s.db.Find(&purchases).Error; err != nil {
		return nil, wrapPersistence("BuildChartData", err)
	}
	rows := make([]sourceRow, len(purchases))
	for i, p := range purchases {
		rows[i] = sourceRow{
			labels: map[string]string{
				"id":            p.ID,
				"batchName":     p.BatchName,
				"supplier":      p.Supplier,
				"datePurchased": p.DatePurchased.Format(bucketDateLayout),
			},
			numbers: map[string]float64{
				"cost": p.Cost,
			},
		}
	}
	return rows, nil
}
