package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts order summary computations by result.
	QuoteTotal *prometheus.CounterVec
	// OrderCreatedTotal counts checkout completions by payment channel and result.
	OrderCreatedTotal *prometheus.CounterVec
	// PromoAttemptTotal counts promo code submissions by outcome.
	PromoAttemptTotal *prometheus.CounterVec
	// SubscribeTotal counts email capture attempts by source and result.
	SubscribeTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of order summary computations by result.",
		}, []string{"result"})
		OrderCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_created_total",
			Help:      "Count of checkout completions by payment channel and result.",
		}, []string{"channel", "result"})
		PromoAttemptTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_attempt_total",
			Help:      "Count of promo code submissions by outcome.",
		}, []string{"result"})
		SubscribeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscribe_total",
			Help:      "Count of email capture attempts by source and result.",
		}, []string{"source", "result"})

		mustRegisterCollector(reg, QuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteTotal = v
			}
		})
		mustRegisterCollector(reg, OrderCreatedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderCreatedTotal = v
			}
		})
		mustRegisterCollector(reg, PromoAttemptTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PromoAttemptTotal = v
			}
		})
		mustRegisterCollector(reg, SubscribeTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				SubscribeTotal = v
			}
		})
	})
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
