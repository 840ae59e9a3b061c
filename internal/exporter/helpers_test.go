package exporter

import (
	"math"

	"webagg/internal/config"
	"webagg/pkg/contracts/domain"
)

func testLayout() Layout {
	return LayoutFromConfig(config.Default().Report)
}

// testReports is a two-month report set with one NaN ECR and an infinite
// percent change.
func testReports() *domain.ReportSet {
	nan := math.NaN()
	device := []domain.AggregateRow{
		{MonthName: "July", DeviceCategory: "Desktop", Sessions: 100, Transactions: 10, Quantity: 12, ECR: 0.1},
		{MonthName: "July", DeviceCategory: "Tablet", Sessions: 0, Transactions: 0, Quantity: 0, ECR: nan},
		{MonthName: "August", DeviceCategory: "Desktop", Sessions: 50, Transactions: 10, Quantity: 11, ECR: 0.2},
	}
	return &domain.ReportSet{
		MonthDevice: device,
		Trend: domain.TrendReport{
			Months: []string{"July", "August"},
			Rows: []domain.TrendRow{
				{Metric: domain.MetricSessions, Values: []float64{100, 50}, AbsChange: []float64{nan, -50}, PctChange: []float64{nan, -50}},
				{Metric: domain.MetricAddsToCart, Values: []float64{0, 40}, AbsChange: []float64{nan, 40}, PctChange: []float64{nan, math.Inf(1)}},
				{Metric: domain.MetricTransactions, Values: []float64{10, 10}, AbsChange: []float64{nan, 0}, PctChange: []float64{nan, 0}},
				{Metric: domain.MetricQuantity, Values: []float64{12, 11}, AbsChange: []float64{nan, -1}, PctChange: []float64{nan, -8.25}},
				{Metric: domain.MetricECR, Values: []float64{0.1, 0.2}, AbsChange: []float64{nan, 0.1}, PctChange: []float64{nan, 100}},
			},
		},
		TopBrowsers: []domain.AggregateRow{
			{Browser: "Chrome", Sessions: 120, Transactions: 15, Quantity: 18, ECR: 0.125},
			{Browser: "Safari", Sessions: 30, Transactions: 5, Quantity: 5, ECR: 0.5},
		},
		MonthDeviceTotals: []domain.AggregateRow{
			device[0],
			device[1],
			{MonthName: "July", DeviceCategory: "Total", Sessions: 100, Transactions: 10, Quantity: 12, ECR: 0.1},
			device[2],
			{MonthName: "August", DeviceCategory: "Total", Sessions: 50, Transactions: 10, Quantity: 11, ECR: 0.2},
		},
	}
}
