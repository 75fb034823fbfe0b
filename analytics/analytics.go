// Package analytics turns historical order rows into the admin dashboard
// aggregates. All computation is pure so it can be tested without a
// database; the controller only loads rows and calls Build.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/linebygizia/gizia-api/models"
)

// OrderRow is the slice of an order the aggregation needs.
type OrderRow struct {
	Email         string
	Total         float64
	PaymentStatus string
	CreatedAt     time.Time
}

// ItemRow is one historical order line.
type ItemRow struct {
	ProductID   int
	ProductName string
	Quantity    int
	Total       float64
}

type Metric struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Growth   float64 `json:"growth"`
}

type TopProduct struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type MonthPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type Report struct {
	Revenue           Metric       `json:"revenue"`
	Orders            Metric       `json:"orders"`
	Customers         Metric       `json:"customers"`
	AverageOrderValue Metric       `json:"averageOrderValue"`
	TopProducts       []TopProduct `json:"topProducts"`
	SalesByMonth      []MonthPoint `json:"salesByMonth"`
}

// Growth is month-over-month percentage growth, defined as 0 when the
// previous period is 0. Rounded to two decimals.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Build aggregates the dashboard report as of now. Revenue counts paid
// orders only; order and customer counts include every order.
func Build(now time.Time, orders []OrderRow, items []ItemRow) Report {
	currentStart := monthStart(now)
	previousStart := monthStart(currentStart.AddDate(0, -1, 0))
	sixMonthsAgo := monthStart(now).AddDate(0, -5, 0)

	var report Report

	var curRevenue, prevRevenue float64
	var curOrders, prevOrders int
	curCustomers := map[string]bool{}
	prevCustomers := map[string]bool{}
	monthly := map[string]*MonthPoint{}

	for _, o := range orders {
		paid := o.PaymentStatus == models.PaymentStatusPaid

		switch {
		case !o.CreatedAt.Before(currentStart):
			curOrders++
			curCustomers[o.Email] = true
			if paid {
				curRevenue += o.Total
			}
		case !o.CreatedAt.Before(previousStart):
			prevOrders++
			prevCustomers[o.Email] = true
			if paid {
				prevRevenue += o.Total
			}
		}

		if paid && !o.CreatedAt.Before(sixMonthsAgo) {
			key := o.CreatedAt.Format("2006-01")
			point, ok := monthly[key]
			if !ok {
				point = &MonthPoint{Month: o.CreatedAt.Format("Jan 2006")}
				monthly[key] = point
			}
			point.Revenue += o.Total
			point.Orders++
		}
	}

	report.Revenue = Metric{Current: round2(curRevenue), Previous: round2(prevRevenue), Growth: Growth(curRevenue, prevRevenue)}
	report.Orders = Metric{Current: float64(curOrders), Previous: float64(prevOrders), Growth: Growth(float64(curOrders), float64(prevOrders))}
	report.Customers = Metric{Current: float64(len(curCustomers)), Previous: float64(len(prevCustomers)), Growth: Growth(float64(len(curCustomers)), float64(len(prevCustomers)))}

	var curAOV, prevAOV float64
	if curOrders > 0 {
		curAOV = curRevenue / float64(curOrders)
	}
	if prevOrders > 0 {
		prevAOV = prevRevenue / float64(prevOrders)
	}
	report.AverageOrderValue = Metric{Current: round2(curAOV), Previous: round2(prevAOV), Growth: Growth(curAOV, prevAOV)}

	report.TopProducts = topProducts(items, 5)
	report.SalesByMonth = monthSeries(monthly)
	return report
}

func topProducts(items []ItemRow, limit int) []TopProduct {
	type agg struct {
		name    string
		sales   int
		revenue float64
	}
	byProduct := map[int]*agg{}
	for _, item := range items {
		a, ok := byProduct[item.ProductID]
		if !ok {
			a = &agg{name: item.ProductName}
			byProduct[item.ProductID] = a
		}
		a.sales += item.Quantity
		a.revenue += item.Total
	}

	all := make([]TopProduct, 0, len(byProduct))
	for _, a := range byProduct {
		all = append(all, TopProduct{Name: a.name, Sales: a.sales, Revenue: round2(a.revenue)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Sales != all[j].Sales {
			return all[i].Sales > all[j].Sales
		}
		return all[i].Name < all[j].Name
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func monthSeries(monthly map[string]*MonthPoint) []MonthPoint {
	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		point := *monthly[k]
		point.Revenue = round2(point.Revenue)
		series = append(series, point)
	}
	return series
}
