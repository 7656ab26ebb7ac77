package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording pack metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordPackOpened()
					RecordPackDeclined()
					RecordPackRollback()
					RecordQuickSell()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording ledger metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordBonusGranted()
					RecordBonusDenied()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording voting metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordVoteCast("new")
					RecordVoteCast("flip")
					RecordVoteCast("withdraw")
					RecordBallotCast()
					RecordElectionRound()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store and HTTP metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordStoreOpLatency("get", 1.2)
					RecordHTTPRequest("packs", "POST", "200")
					RecordHTTPRequestDuration("packs", "POST", "200", 3.4)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global metrics registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})
		})
	})
}
