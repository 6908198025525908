package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PriceResolutionTotal counts unit price resolutions by promotional outcome.
	PriceResolutionTotal *prometheus.CounterVec
	// ComboQuoteTotal counts combo bundle quotes by pricing state.
	ComboQuoteTotal *prometheus.CounterVec
	// ShippingQuoteTotal counts delivery quotes by free-delivery reason.
	ShippingQuoteTotal *prometheus.CounterVec
	// CheckoutQuoteTotal counts checkout total computations.
	CheckoutQuoteTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PriceResolutionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_resolution_total",
			Help:      "Count of unit price resolutions by promotional outcome.",
		}, []string{"promotional"})
		ComboQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "combo_quote_total",
			Help:      "Count of combo bundle quotes by pricing state.",
		}, []string{"state"})
		ShippingQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipping_quote_total",
			Help:      "Count of delivery quotes by free-delivery reason.",
		}, []string{"free_reason"})
		CheckoutQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_quote_total",
			Help:      "Count of checkout total computations.",
		}, []string{"coupon_applied"})

		mustRegisterCollector(reg, PriceResolutionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PriceResolutionTotal = v
			}
		})
		mustRegisterCollector(reg, ComboQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ComboQuoteTotal = v
			}
		})
		mustRegisterCollector(reg, ShippingQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ShippingQuoteTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutQuoteTotal = v
			}
		})
	})
}

// ObservePriceResolution records a resolution outcome. Safe before
// registration: unregistered collectors are simply skipped.
func ObservePriceResolution(promotional bool) {
	if PriceResolutionTotal == nil {
		return
	}
	label := "false"
	if promotional {
		label = "true"
	}
	PriceResolutionTotal.WithLabelValues(label).Inc()
}

// ObserveComboQuote records a combo quote by pricing state.
func ObserveComboQuote(state string) {
	if ComboQuoteTotal == nil {
		return
	}
	ComboQuoteTotal.WithLabelValues(state).Inc()
}

// ObserveShippingQuote records a delivery quote. An empty reason means a fee
// applied.
func ObserveShippingQuote(freeReason string) {
	if ShippingQuoteTotal == nil {
		return
	}
	if freeReason == "" {
		freeReason = "none"
	}
	ShippingQuoteTotal.WithLabelValues(freeReason).Inc()
}

// ObserveCheckoutQuote records a checkout quote computation.
func ObserveCheckoutQuote(couponApplied bool) {
	if CheckoutQuoteTotal == nil {
		return
	}
	label := "false"
	if couponApplied {
		label = "true"
	}
	CheckoutQuoteTotal.WithLabelValues(label).Inc()
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
