package stats

import (
	"sort"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// ServiceRevenue is one pivot column: an explicit (service, amount)
// pair instead of a dynamically keyed object.
type ServiceRevenue struct {
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Revenue     float64 `json:"revenue"`
}

type TherapistRevenue struct {
	TherapistID   uint             `json:"therapist_id"`
	TherapistName string           `json:"therapist_name"`
	Total         float64          `json:"total"`
	Services      []ServiceRevenue `json:"services"`
}

// RevenueByTherapist pivots revenue per therapist per service.
// Zero-amount service columns and zero-total therapists are omitted,
// output is sorted by total descending.
func RevenueByTherapist(apps []models.Appointment) []TherapistRevenue {
	type acc struct {
		name      string
		total     float64
		byService map[uint]float64
		svcNames  map[uint]string
		order     []uint
	}

	accs := make(map[uint]*acc)
	var therapistOrder []uint

	for _, ap := range apps {
		if !schedule.CountsForRevenue(schedule.Status(ap.Status)) {
			continue
		}
		a, ok := accs[ap.TherapistID]
		if !ok {
			a = &acc{
				name:      ap.Therapist.Name,
				byService: make(map[uint]float64),
				svcNames:  make(map[uint]string),
			}
			accs[ap.TherapistID] = a
			therapistOrder = append(therapistOrder, ap.TherapistID)
		}
		if _, seen := a.byService[ap.ServiceID]; !seen {
			a.order = append(a.order, ap.ServiceID)
		}
		a.byService[ap.ServiceID] += ap.Price
		a.svcNames[ap.ServiceID] = ap.Service.Name
		a.total += ap.Price
	}

	var out []TherapistRevenue
	for _, tid := range therapistOrder {
		a := accs[tid]
		if a.total == 0 {
			continue
		}
		tr := TherapistRevenue{
			TherapistID:   tid,
			TherapistName: a.name,
			Total:         a.total,
		}
		for _, sid := range a.order {
			if a.byService[sid] == 0 {
				continue
			}
			tr.Services = append(tr.Services, ServiceRevenue{
				ServiceID:   sid,
				ServiceName: a.svcNames[sid],
				Revenue:     a.byService[sid],
			})
		}
		out = append(out, tr)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

type ServiceStat struct {
	ServiceID        uint    `json:"service_id"`
	ServiceName      string  `json:"service_name"`
	Revenue          float64 `json:"revenue"`
	AppointmentCount int     `json:"appointment_count"`
}

// ServiceDistribution totals revenue and bookings per service,
// omitting services that earned nothing in the range. Cancelled and
// no-show bookings contribute to neither number: this table measures
// delivered work, unlike the activity counts in the chart buckets.
func ServiceDistribution(apps []models.Appointment) []ServiceStat {
	accs := make(map[uint]*ServiceStat)
	var order []uint

	for _, ap := range apps {
		s, ok := accs[ap.ServiceID]
		if !ok {
			s = &ServiceStat{
				ServiceID:   ap.ServiceID,
				ServiceName: ap.Service.Name,
			}
			accs[ap.ServiceID] = s
			order = append(order, ap.ServiceID)
		}
		if schedule.CountsForRevenue(schedule.Status(ap.Status)) {
			s.Revenue += ap.Price
			s.AppointmentCount++
		}
	}

	var out []ServiceStat
	for _, sid := range order {
		if accs[sid].Revenue == 0 {
			continue
		}
		out = append(out, *accs[sid])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

// TotalRevenue sums the prices of revenue-counting appointments.
func TotalRevenue(apps []models.Appointment) float64 {
	var total float64
	for _, ap := range apps {
		if schedule.CountsForRevenue(schedule.Status(ap.Status)) {
			total += ap.Price
		}
	}
	return total
}

// CountDistinctClients counts unique clients over a set of appointments.
func CountDistinctClients(apps []models.Appointment) int {
	seen := make(map[uint]struct{})
	for _, ap := range apps {
		seen[ap.ClientID] = struct{}{}
	}
	return len(seen)
}
