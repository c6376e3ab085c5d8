package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "gaffer")
				So(manager.subsystem, ShouldEqual, "tactics")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("custom-ns"),
				WithSubsystem("custom-sub"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should apply", func() {
				So(manager.namespace, ShouldEqual, "custom-ns")
				So(manager.subsystem, ShouldEqual, "custom-sub")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			})
		})

		Convey("When passing empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "gaffer")
				So(manager.subsystem, ShouldEqual, "tactics")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording every metric kind", func() {
			Convey("Then no helper should panic", func() {
				So(func() {
					RecordHTTPRequest("layout", "GET", "200")
					RecordHTTPRequestDuration("layout", "GET", "200", 12.5)
					RecordSessionCreated()
					UpdateActiveSessions(3)
					RecordImageResolution("resolved")
					RecordImageResolution("fallback")
					RecordImageResolution("cache_hit")
					RecordImageResolveLatency(80)
					RecordResolveDiscarded()
					RecordReportRequest()
					RecordReportFailure()
					RecordReportLatency(900)
					UpdateQueueSize(4)
					UpdateQueueCapacity(256)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueEnqueueError()
					UpdateWorkerCount(2)
					RecordWorkerProcessingLatency(95)
					RecordWorkerError()
					RecordErrorByComponent("llm", "timeout")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(42)
				}, ShouldNotPanic)
			})
		})

		Convey("When reading the registry", func() {
			Convey("Then the custom registry should gather metrics", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
